// Package constants holds shared constants such as database table names.
package constants

// Database table names
const (
	TableCategories       = "categories"
	TableParameters       = "parameters"
	TableSettings         = "settings"
	TableGeneratedContent = "generated_content"
	TableMigrations       = "migrations"
)
