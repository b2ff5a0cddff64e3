// Package main — Repository katmanı başlatma.
//
// initRepositories, tüm repository implementasyonlarını oluşturur.
// Her repository aynı *sql.DB'yi alır ve interface döner.
package main

import (
	"database/sql"

	"github.com/akinalp/grocery-planner/repository"
)

// Repositories, tüm repository instance'larını tutan container struct.
type Repositories struct {
	User         repository.UserRepository
	Session      repository.SessionRepository
	Verification repository.VerificationRepository
	Profile      repository.ProfileRepository
	GroceryList  repository.GroceryListRepository
}

// initRepositories, veritabanı bağlantısından tüm repository'leri oluşturur.
// sql.DB thread-safe bir connection pool'dur, paylaşılması güvenlidir.
func initRepositories(conn *sql.DB) *Repositories {
	return &Repositories{
		User:         repository.NewSQLiteUserRepo(conn),
		Session:      repository.NewSQLiteSessionRepo(conn),
		Verification: repository.NewSQLiteVerificationRepo(conn),
		Profile:      repository.NewSQLiteProfileRepo(conn),
		GroceryList:  repository.NewSQLiteGroceryListRepo(conn),
	}
}
