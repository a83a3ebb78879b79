package services

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/trackmasterhq/trackmaster-backend/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory SQLite database for one test and runs
// the migrations. cache=shared keeps GORM's pooled connections on the same
// database; the name is derived from the test so tests don't share state.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Client{},
		&models.Vehicle{},
		&models.Job{},
		&models.Device{},
		&models.SimCard{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name string, role models.Role) *models.User {
	t.Helper()
	user := &models.User{
		ID:       uuid.New(),
		FullName: name,
		Email:    fmt.Sprintf("%s@trackmaster.test", uuid.NewString()[:8]),
		Password: "x",
		Role:     role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// seedJob creates a client+vehicle+job chain with the job at the given
// status.
func seedJob(t *testing.T, db *gorm.DB, status models.JobStatus) *models.Job {
	t.Helper()

	client := &models.Client{
		ID:          uuid.New(),
		FullName:    "Test Client",
		PhoneNumber: "080" + uuid.NewString()[:8],
	}
	require.NoError(t, db.Create(client).Error)

	vehicle := &models.Vehicle{
		ID:       uuid.New(),
		ClientID: client.ID,
		Name:     "Toyota Corolla",
		Year:     "2018",
	}
	require.NoError(t, db.Create(vehicle).Error)

	job := &models.Job{
		ID:        uuid.New(),
		VehicleID: vehicle.ID,
		Status:    status,
	}
	require.NoError(t, db.Create(job).Error)
	return job
}

func seedDevice(t *testing.T, db *gorm.DB, imei string, status models.UnitStatus) *models.Device {
	t.Helper()
	device := &models.Device{ID: uuid.New(), IMEI: imei, Status: status}
	require.NoError(t, db.Create(device).Error)
	return device
}

func seedSimCard(t *testing.T, db *gorm.DB, simNumber string, status models.UnitStatus) *models.SimCard {
	t.Helper()
	sim := &models.SimCard{ID: uuid.New(), SimNumber: simNumber, Network: "MTN", Status: status}
	require.NoError(t, db.Create(sim).Error)
	return sim
}

func reloadJob(t *testing.T, db *gorm.DB, id uuid.UUID) *models.Job {
	t.Helper()
	var job models.Job
	require.NoError(t, db.First(&job, "id = ?", id).Error)
	return &job
}
