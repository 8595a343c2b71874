package models

import "gorm.io/gorm"

// AutoMigrate creates or updates every table the service owns. Run at startup
// behind the MIGRATE env switch.
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&Project{},
		&Comment{},
		&Profile{},
		&UsernameChange{},
		&Notification{},
		&Report{},
		&Like{},
		&DeletedProject{},
		&RelaunchRequest{},
	)
	if err != nil {
		return err
	}

	// Partial unique indexes are beyond gorm tags. At most one launched
	// project may hold a given normalized URL; drafts are unconstrained.
	return db.Exec(
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_projects_normalized_url_launched " +
			"ON projects (normalized_url) WHERE status = 'launched'",
	).Error
}
