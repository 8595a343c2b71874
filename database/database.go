package database

import (
	"gorm.io/gorm"
)

type Database struct {
	projectRepo        *ProjectRepo
	commentRepo        *CommentRepo
	profileRepo        *ProfileRepo
	notificationRepo   *NotificationRepo
	reportRepo         *ReportRepo
	likeRepo           *LikeRepo
	deletedProjectRepo *DeletedProjectRepo
	relaunchRepo       *RelaunchRequestRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		projectRepo:        NewProjectRepo(db),
		commentRepo:        NewCommentRepo(db),
		profileRepo:        NewProfileRepo(db),
		notificationRepo:   NewNotificationRepo(db),
		reportRepo:         NewReportRepo(db),
		likeRepo:           NewLikeRepo(db),
		deletedProjectRepo: NewDeletedProjectRepo(db),
		relaunchRepo:       NewRelaunchRequestRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) CommentRepo() *CommentRepo {
	return d.commentRepo
}

func (d Database) ProfileRepo() *ProfileRepo {
	return d.profileRepo
}

func (d Database) NotificationRepo() *NotificationRepo {
	return d.notificationRepo
}

func (d Database) ReportRepo() *ReportRepo {
	return d.reportRepo
}

func (d Database) LikeRepo() *LikeRepo {
	return d.likeRepo
}

func (d Database) DeletedProjectRepo() *DeletedProjectRepo {
	return d.deletedProjectRepo
}

func (d Database) RelaunchRequestRepo() *RelaunchRequestRepo {
	return d.relaunchRepo
}
