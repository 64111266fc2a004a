package aladinapi

import "encoding/json"

// searchResponse is the ItemSearch JSON body (output=js, Version=20131101).
type searchResponse struct {
	TotalResults int    `json:"totalResults"`
	ErrorCode    int    `json:"errorCode"`
	ErrorMessage string `json:"errorMessage"`
	Items        []item `json:"item"`
}

type item struct {
	ItemID             json.Number `json:"itemId"`
	Title              string      `json:"title"`
	Author             string      `json:"author"`
	Description        string      `json:"description"`
	Publisher          string      `json:"publisher"`
	PubDate            string      `json:"pubDate"`
	CustomerReviewRank float64     `json:"customerReviewRank"`
	SeriesInfo         *seriesInfo `json:"seriesInfo"`
	CategoryName       string      `json:"categoryName"`
	ISBN13             string      `json:"isbn13"`
	Cover              string      `json:"cover"`
	Link               string      `json:"link"`
}

type seriesInfo struct {
	SeriesName string `json:"seriesName"`
}

// catalog is one SearchTarget of the API together with the language its
// items are published in.
type catalog struct {
	Target   string
	Language string
}

var catalogs = []catalog{
	{Target: "Book", Language: "kor"},
	{Target: "Foreign", Language: "eng"},
}
