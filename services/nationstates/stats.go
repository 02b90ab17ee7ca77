// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package nationstates

import (
	"context"
	"encoding/xml"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/AleutianAI/Statecraft/pkg/decisionlog"
)

// statsShards is the fixed set of API shards captured in a snapshot.
const statsShards = "category+freedom+region+population+gdp+income+tax+government+deaths"

// FetchNationStats captures a point-in-time snapshot of aggregate
// nation metrics. Unlike issue operations, the stats shards are public
// and need no password, only the User-Agent.
func (c *Client) FetchNationStats(ctx context.Context) (*decisionlog.StatsSnapshot, error) {
	ctx, span := tracer.Start(ctx, "Client.FetchNationStats")
	defer span.End()

	params := url.Values{}
	params.Set("nation", c.nation)
	params.Set("q", statsShards)

	resp, err := c.Send(ctx, params, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}

	var doc nationStatsDocument
	if err := xml.Unmarshal(resp.Body, &doc); err != nil {
		slog.Error("Failed to parse nation stats XML", "error", err)
		return nil, fmt.Errorf("%w: failed to parse stats response: %v", ErrFetch, err)
	}

	now := time.Now()
	snapshot := &decisionlog.StatsSnapshot{
		Timestamp:  float64(now.UnixNano()) / 1e9,
		Date:       now.Format(time.RFC3339),
		Category:   doc.Category,
		Region:     doc.Region,
		Population: doc.Population,
		GDP:        doc.GDP,
		Income:     doc.Income,
		Tax:        doc.Tax,
	}

	if doc.Freedom != nil {
		snapshot.CivilRights = doc.Freedom.CivilRights
		snapshot.Economy = doc.Freedom.Economy
		snapshot.PoliticalFreedom = doc.Freedom.PoliticalFreedom
	}

	if doc.Govt != nil {
		snapshot.Govt = map[string]float64{}
		sectors := []struct {
			name  string
			value *float64
		}{
			{"administration", doc.Govt.Administration},
			{"defence", doc.Govt.Defence},
			{"education", doc.Govt.Education},
			{"environment", doc.Govt.Environment},
			{"healthcare", doc.Govt.Healthcare},
			{"commerce", doc.Govt.Commerce},
			{"international_aid", doc.Govt.InternationalAid},
			{"law_and_order", doc.Govt.LawAndOrder},
			{"public_transport", doc.Govt.PublicTransport},
			{"social_equality", doc.Govt.SocialEquality},
			{"spirituality", doc.Govt.Spirituality},
			{"welfare", doc.Govt.Welfare},
		}
		for _, s := range sectors {
			if s.value != nil {
				snapshot.Govt[s.name] = *s.value
			}
		}
	}

	if doc.Deaths != nil && len(doc.Deaths.Causes) > 0 {
		snapshot.CausesOfDeath = map[string]float64{}
		for _, cause := range doc.Deaths.Causes {
			pct, err := strconv.ParseFloat(strings.TrimSpace(cause.Percent), 64)
			if err != nil {
				slog.Warn("Skipping unparseable death cause", "type", cause.Type, "value", cause.Percent)
				continue
			}
			snapshot.CausesOfDeath[cause.Type] = pct
		}
	}

	slog.Info("Fetched nation stats", "category", snapshot.Category, "region", snapshot.Region)
	return snapshot, nil
}
