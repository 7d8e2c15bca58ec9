package shell

// Pages are the views of the five dashboard sections.
type Pages struct {
	Dashboard View
	Inventory View
	Plants    View
	Materials View
	Analytics View
}

// DefaultRoutes returns the fixed dashboard route table.
func DefaultRoutes(p Pages) []Route {
	return []Route{
		{Pattern: "/", Title: "Dashboard", View: p.Dashboard},
		{Pattern: "/inventory", Title: "Inventory", View: p.Inventory},
		{Pattern: "/plants", Title: "Plants", View: p.Plants},
		{Pattern: "/materials", Title: "Materials", View: p.Materials},
		{Pattern: "/analytics", Title: "Analytics", View: p.Analytics},
	}
}
