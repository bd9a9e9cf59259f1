/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package testmodels

import (
	"github.com/go-openapi/strfmt"

	"github.com/suparena/entitymeta/storagemodels"
)

type RatingSystem struct {

	// Timestamp when the rating system was created.
	// Required: true
	// Format: date-time
	CreatedAt *strfmt.DateTime `json:"CreatedAt" dynamodbav:"CreatedAt"`

	// A description of the rating system.
	// Required: true
	Description *string `json:"Description" dynamodbav:"Description"`

	// Unique identifier for the rating system.
	// Required: true
	ID *string `json:"Id" dynamodbav:"Id"`

	// Name of the rating system.
	// Required: true
	Name *string `json:"Name" dynamodbav:"Name"`

	// site Url
	SiteURL string `json:"SiteUrl,omitempty" dynamodbav:"SiteUrl,omitempty"`

	// Timestamp when the rating system was last updated.
	// Required: true
	// Format: date-time
	UpdatedAt *strfmt.DateTime `json:"UpdatedAt" dynamodbav:"UpdatedAt"`
}

// TableOptions places rating systems in a per-environment table.
func (RatingSystem) TableOptions() storagemodels.TableOptions {
	return storagemodels.NewTableOptions(
		storagemodels.WithTableName("${env.prefix:dev}_rating_systems"),
		storagemodels.WithProvisioned(10, 5, storagemodels.NotSet),
		storagemodels.WithConsistency("ABSOLUTE"),
	)
}

// Match is a played match with a server-generated numeric key.
type Match struct {
	MatchID   int64            `json:"MatchId" dynamodbav:"MatchId" nosql:"id,generated"`
	RatingID  string           `json:"RatingId" dynamodbav:"RatingId"`
	PlayedAt  *strfmt.DateTime `json:"PlayedAt" dynamodbav:"PlayedAt"`
	Winner    string           `json:"Winner" dynamodbav:"Winner"`
	Loser     string           `json:"Loser" dynamodbav:"Loser"`
	ScoreLine string           `json:"ScoreLine,omitempty" dynamodbav:"ScoreLine,omitempty"`
}

// TableOptions keeps matches on demand with a short timeout.
func (Match) TableOptions() storagemodels.TableOptions {
	return storagemodels.NewTableOptions(
		storagemodels.WithOnDemand(storagemodels.NotSet),
		storagemodels.WithDurability("COMMIT_SYNC"),
		storagemodels.WithTimeoutMillis(2000),
	)
}

// Player is keyed by a generated UUID.
type Player struct {
	PlayerID string `dynamodbav:"player_id" nosql:"id,generated"`
	Name     string `dynamodbav:"name"`
	Rating   int    `dynamodbav:"rating"`
}

// Season is keyed by its start date.
type Season struct {
	Start strfmt.Date `json:"Start" dynamodbav:"Start" entity:"id"`
	Label string      `json:"Label" dynamodbav:"Label"`
}
