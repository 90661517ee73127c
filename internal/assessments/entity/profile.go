package entity

// Profile is the static description shown for a recommended structure.
type Profile struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Pros        []string `json:"pros"`
	Cons        []string `json:"cons"`
}

var profiles = map[Structure]Profile{
	StructureSL: {
		Name:        "Sociedad Limitada (SL)",
		Description: "Private limited company. The most common vehicle for small and medium businesses in Spain.",
		Pros: []string{
			"Minimum share capital of 1 EUR",
			"Liability limited to contributed capital",
			"Simple governance and lower running costs",
		},
		Cons: []string{
			"Share transfers are restricted",
			"Cannot be listed or raise capital from the public",
		},
	},
	StructureSA: {
		Name:        "Sociedad Anónima (SA)",
		Description: "Public limited company, suited to large projects, many shareholders or a future listing.",
		Pros: []string{
			"Shares transfer freely",
			"Can be listed and raise capital from the public",
			"Liability limited to contributed capital",
		},
		Cons: []string{
			"Minimum share capital of 60,000 EUR, 25% paid up at incorporation",
			"Heavier governance and audit requirements",
		},
	},
	StructureBranch: {
		Name:        "Branch (Sucursal)",
		Description: "Permanent establishment of a foreign company, without separate legal personality.",
		Pros: []string{
			"No minimum capital",
			"Full control by the parent company",
			"Start-up losses can offset parent profits in some jurisdictions",
		},
		Cons: []string{
			"The parent is fully liable for the branch's obligations",
			"Parent documents must be legalised and translated",
		},
	},
	StructureSubsidiary: {
		Name:        "Subsidiary",
		Description: "Spanish company (usually an SL) owned by a foreign parent.",
		Pros: []string{
			"Liability ring-fenced from the parent",
			"Local entity that clients and banks recognise",
			"Access to Spanish incentives and the EU parent-subsidiary regime",
		},
		Cons: []string{
			"Separate accounts, tax filings and governance",
			"Transfer pricing documentation for intra-group transactions",
		},
	},
}

// ProfileOf returns the static profile of a structure.
func ProfileOf(s Structure) (Profile, bool) {
	p, ok := profiles[s]
	return p, ok
}
