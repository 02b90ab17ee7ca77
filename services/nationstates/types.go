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

// Issue is one policy dilemma, immutable once fetched. It exists for
// the duration of a single decision cycle.
type Issue struct {
	ID      string
	Title   string
	Text    string
	Options []Option
}

// Option is one selectable resolution to an Issue. IDs are opaque
// tokens, unique within the issue, assigned by the API.
type Option struct {
	ID   string
	Text string
}

// --- XML wire types (API schema, consumed as-is) ---

type issuesDocument struct {
	Issues []issueXML `xml:"ISSUES>ISSUE"`
}

type issueXML struct {
	ID      string      `xml:"id,attr"`
	Title   string      `xml:"TITLE"`
	Text    string      `xml:"TEXT"`
	Options []optionXML `xml:"OPTION"`
}

type optionXML struct {
	ID   string `xml:"id,attr"`
	Text string `xml:",chardata"`
}

type nationStatsDocument struct {
	Category   string   `xml:"CATEGORY"`
	Region     string   `xml:"REGION"`
	Population *int64   `xml:"POPULATION"`
	GDP        *int64   `xml:"GDP"`
	Income     *int64   `xml:"INCOME"`
	Tax        *float64 `xml:"TAX"`
	Freedom    *freedomXML `xml:"FREEDOM"`
	Govt       *govtXML    `xml:"GOVT"`
	Deaths     *deathsXML  `xml:"DEATHS"`
}

type freedomXML struct {
	CivilRights      string `xml:"CIVILRIGHTS"`
	Economy          string `xml:"ECONOMY"`
	PoliticalFreedom string `xml:"POLITICALFREEDOM"`
}

type govtXML struct {
	Administration   *float64 `xml:"ADMINISTRATION"`
	Defence          *float64 `xml:"DEFENCE"`
	Education        *float64 `xml:"EDUCATION"`
	Environment      *float64 `xml:"ENVIRONMENT"`
	Healthcare       *float64 `xml:"HEALTHCARE"`
	Commerce         *float64 `xml:"COMMERCE"`
	InternationalAid *float64 `xml:"INTERNATIONALAID"`
	LawAndOrder      *float64 `xml:"LAWANDORDER"`
	PublicTransport  *float64 `xml:"PUBLICTRANSPORT"`
	SocialEquality   *float64 `xml:"SOCIALEQUALITY"`
	Spirituality     *float64 `xml:"SPIRITUALITY"`
	Welfare          *float64 `xml:"WELFARE"`
}

type deathsXML struct {
	Causes []causeXML `xml:"CAUSE"`
}

type causeXML struct {
	Type string `xml:"type,attr"`
	// chardata must land in a string; parsed to float at mapping time.
	Percent string `xml:",chardata"`
}
