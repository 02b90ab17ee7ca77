// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package analytics

import (
	"fmt"
	"math"

	"github.com/AleutianAI/Statecraft/pkg/decisionlog"
)

// taxChangeFloor suppresses comparison noise below a tenth of a
// percentage point.
const taxChangeFloor = 0.1

// CompareSnapshots reports the changes between two stat snapshots as
// display-ready lines. Fields missing from either snapshot are
// skipped; an empty result means nothing moved.
func CompareSnapshots(old, cur *decisionlog.StatsSnapshot) []string {
	if old == nil || cur == nil {
		return nil
	}

	var lines []string

	if old.Population != nil && cur.Population != nil {
		delta := *cur.Population - *old.Population
		lines = append(lines, fmt.Sprintf("Population: %d → %d (%+d)",
			*old.Population, *cur.Population, delta))
	}

	if old.GDP != nil && cur.GDP != nil {
		delta := *cur.GDP - *old.GDP
		lines = append(lines, fmt.Sprintf("GDP: %d → %d (%+d)",
			*old.GDP, *cur.GDP, delta))
	}

	freedoms := []struct {
		label    string
		old, cur string
	}{
		{"Civil Rights", old.CivilRights, cur.CivilRights},
		{"Economy", old.Economy, cur.Economy},
		{"Political Freedom", old.PoliticalFreedom, cur.PoliticalFreedom},
	}
	for _, f := range freedoms {
		if f.old != "" && f.cur != "" && f.old != f.cur {
			lines = append(lines, fmt.Sprintf("%s: %s → %s", f.label, f.old, f.cur))
		}
	}

	if old.Tax != nil && cur.Tax != nil {
		delta := *cur.Tax - *old.Tax
		if math.Abs(delta) > taxChangeFloor {
			lines = append(lines, fmt.Sprintf("Tax Rate: %.1f%% → %.1f%% (%+.1f%%)",
				*old.Tax, *cur.Tax, delta))
		}
	}

	return lines
}
