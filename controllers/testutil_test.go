package controllers

import (
	"context"
	"fmt"
	"testing"

	dbpkg "streampass/db"
	"streampass/models"
	"streampass/tools"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
	"github.com/stretchr/testify/require"
)

// openTestDB abre um sqlite em memória compartilhado entre conexões
// (cache=shared), para que transação e leituras fora dela enxerguem o
// mesmo banco. Nome aleatório isola os testes entre si.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", tools.RandomLower(8))
	db, err := gorm.Open("sqlite3", dsn)
	require.NoError(t, err)
	db.LogMode(false)

	dbpkg.AutoMigrate(db)

	t.Cleanup(func() { db.Close() })
	return db
}

func seedService(t *testing.T, db *gorm.DB, name, code string, maxProfiles int) models.Service {
	t.Helper()
	service := models.Service{Name: name, Code: code, MaxProfiles: maxProfiles}
	require.NoError(t, db.Create(&service).Error)
	return service
}

func seedPlan(t *testing.T, db *gorm.DB, service models.Service, name string, durationDays int) models.Plan {
	t.Helper()
	plan := models.Plan{ServiceID: service.ID, Name: name, DurationDays: durationDays}
	require.NoError(t, db.Create(&plan).Error)
	return plan
}

func seedVendor(t *testing.T, db *gorm.DB, name string) models.Client {
	t.Helper()
	vendor := models.Client{
		Name:     name,
		Username: "vnd" + tools.RandomLower(8),
		Password: tools.RandomString(8),
	}
	require.NoError(t, db.Create(&vendor).Error)
	return vendor
}

// fakeChannel registra as entregas e responde o resultado configurado.
type fakeChannel struct {
	ok         bool
	recipients []string
	payloads   []CredentialsPayload
}

func (f *fakeChannel) Send(_ context.Context, recipient string, payload CredentialsPayload) bool {
	f.recipients = append(f.recipients, recipient)
	f.payloads = append(f.payloads, payload)
	return f.ok
}
