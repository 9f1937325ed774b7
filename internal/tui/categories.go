package tui

type Category struct {
	ID          string
	Name        string
	Description string
}

var Categories = []Category{
	{ID: "paths", Name: "Paths", Description: "Input, working and output directories"},
	{ID: "extract", Name: "Extraction", Description: "Archive limit and entry size cap"},
	{ID: "bundle", Name: "Bundling", Description: "esbuild target, minification and Node shims"},
	{ID: "logging", Name: "Logging", Description: "Log level, format and progress bars"},
	{ID: "report", Name: "Report", Description: "YAML run report location"},
}

func GetCategoryByID(id string) *Category {
	for i := range Categories {
		if Categories[i].ID == id {
			return &Categories[i]
		}
	}
	return nil
}

func GetCategoryNames() []string {
	names := make([]string, len(Categories))
	for i, c := range Categories {
		names[i] = c.Name
	}
	return names
}
