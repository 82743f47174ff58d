package models

import (
	"fmt"
	"log"
	"os"
	"reflect"
	"strings"

	"gorm.io/gen"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// AllModels lists every persisted entity, in migration order (referenced
// tables first).
func AllModels() []interface{} {
	return []interface{}{
		&Organizer{},
		&Student{},
		&Employer{},
		&JobPosting{},
		&Match{},
		&Application{},
		&Notification{},
		&AnalyticsEvent{},
		&AIInteraction{},
	}
}

// GenerateModels migrates the schema and generates typed query helpers.
// Triggered by GENERATE_MODELS=true; the process exits after generation.
func GenerateModels(db *gorm.DB) {
	if err := db.Exec("SELECT 1").Error; err != nil {
		fmt.Printf("Error connecting to database: %v\n", err)
		os.Exit(1)
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             0,
			LogLevel:                  logger.Info,
			IgnoreRecordNotFoundError: false,
			Colorful:                  true,
		},
	)
	db = db.Session(&gorm.Session{
		Logger:                 newLogger,
		SkipDefaultTransaction: true,
		PrepareStmt:            false,
	})

	g := gen.NewGenerator(gen.Config{
		OutPath:           "./generated",
		Mode:              gen.WithDefaultQuery | gen.WithQueryInterface,
		FieldNullable:     true,
		FieldCoverable:    true,
		FieldWithIndexTag: true,
		FieldWithTypeTag:  true,
	})
	g.UseDB(db)
	g.ApplyBasic(
		Student{},
		Employer{},
		JobPosting{},
		Match{},
		Organizer{},
		Application{},
		Notification{},
		AnalyticsEvent{},
		AIInteraction{},
	)

	fmt.Println("Starting database migration...")
	if err := db.AutoMigrate(AllModels()...); err != nil {
		fmt.Printf("Error during models migration: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Database migration completed successfully!")

	GenerateColumnMismatchReport(db)

	g.Execute()
	fmt.Println("Model generation complete!")
}

// GenerateColumnMismatchReport reports database columns that aren't
// accounted for as fields in the corresponding Go model structs. Triggered
// standalone via GENERATE_COLUMN_REPORT=true.
func GenerateColumnMismatchReport(db *gorm.DB) {
	fmt.Println("=== COLUMN MISMATCH REPORT ===")

	modelMappings := map[string]interface{}{
		"students":         Student{},
		"employers":        Employer{},
		"job_postings":     JobPosting{},
		"matches":          Match{},
		"organizers":       Organizer{},
		"applications":     Application{},
		"notifications":    Notification{},
		"analytics_events": AnalyticsEvent{},
		"ai_interactions":  AIInteraction{},
	}

	totalMismatches := 0
	for tableName, modelStruct := range modelMappings {
		fmt.Printf("\n--- Table: %s ---\n", tableName)

		dbColumns, err := getTableColumns(db, tableName)
		if err != nil {
			if strings.Contains(err.Error(), "does not exist") {
				fmt.Println("Table does not exist yet (will be created during migration)")
			} else {
				fmt.Printf("Error getting columns for table %s: %v\n", tableName, err)
			}
			continue
		}

		mismatches := findColumnMismatches(dbColumns, getModelColumns(modelStruct))
		if len(mismatches) > 0 {
			fmt.Printf("Found %d columns not accounted for in model:\n", len(mismatches))
			for _, col := range mismatches {
				fmt.Printf("  - %s\n", col)
			}
			totalMismatches += len(mismatches)
		} else {
			fmt.Println("All columns are accounted for in the model.")
		}
	}

	fmt.Printf("\n=== SUMMARY ===\n")
	fmt.Printf("Total mismatched columns across all tables: %d\n", totalMismatches)
}

// GenerateColumnMismatchReportStandalone runs the report without migrating.
func GenerateColumnMismatchReportStandalone(db *gorm.DB) {
	if err := db.Exec("SELECT 1").Error; err != nil {
		fmt.Printf("Error connecting to database: %v\n", err)
		os.Exit(1)
	}
	GenerateColumnMismatchReport(db)
}

func getTableColumns(db *gorm.DB, tableName string) ([]string, error) {
	var columns []string
	query := `
		SELECT column_name
		FROM information_schema.columns
		WHERE table_name = ?
		AND table_schema = CURRENT_SCHEMA()
		ORDER BY ordinal_position
	`
	if err := db.Raw(query, tableName).Scan(&columns).Error; err != nil {
		return nil, fmt.Errorf("error querying columns for table %s: %w", tableName, err)
	}

	if len(columns) == 0 {
		var tableExists bool
		tableQuery := `
			SELECT EXISTS (
				SELECT FROM information_schema.tables
				WHERE table_schema = CURRENT_SCHEMA()
				AND table_name = ?
			)
		`
		if err := db.Raw(tableQuery, tableName).Scan(&tableExists).Error; err != nil {
			return nil, fmt.Errorf("error checking if table %s exists: %w", tableName, err)
		}
		if !tableExists {
			return nil, fmt.Errorf("table %s does not exist", tableName)
		}
	}

	return columns, nil
}

// getModelColumns extracts column names from a model struct's db tags.
func getModelColumns(model interface{}) []string {
	var columns []string
	t := reflect.TypeOf(model)
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.Anonymous {
			continue
		}
		if dbTag := field.Tag.Get("db"); dbTag != "" && dbTag != "-" {
			columns = append(columns, dbTag)
		}
	}
	return columns
}

func findColumnMismatches(dbColumns, modelColumns []string) []string {
	modelColumnSet := make(map[string]bool, len(modelColumns))
	for _, col := range modelColumns {
		modelColumnSet[col] = true
	}

	var mismatches []string
	for _, col := range dbColumns {
		if !modelColumnSet[col] {
			mismatches = append(mismatches, col)
		}
	}
	return mismatches
}
