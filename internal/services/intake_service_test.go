package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trackmasterhq/trackmaster-backend/internal/models"
)

func TestCreateLead(t *testing.T) {
	t.Run("one job per named vehicle", func(t *testing.T) {
		db := newTestDB(t)
		svc := NewIntakeService(db)
		csr := seedUser(t, db, "CSR", models.RoleCSR)

		client, err := svc.CreateLead(csr.ID, CreateLeadInput{
			FullName:    "Mr. Adebayo",
			PhoneNumber: "08012345678",
			Email:       "adebayo@example.com",
			LeadSource:  "Instagram",
			Vehicles: []VehicleInput{
				{Name: "Toyota Camry", Year: "2019", PlateNumber: "ABC-123-XY"},
				{Name: "Honda CR-V", Year: "2021"},
			},
		})
		require.NoError(t, err)
		require.NotNil(t, client.CreatedByID)
		assert.Equal(t, csr.ID, *client.CreatedByID)

		var vehicles []models.Vehicle
		require.NoError(t, db.Where("client_id = ?", client.ID).Find(&vehicles).Error)
		assert.Len(t, vehicles, 2)

		var jobs []models.Job
		require.NoError(t, db.Find(&jobs).Error)
		require.Len(t, jobs, 2)
		for _, j := range jobs {
			assert.Equal(t, models.StatusNewLead, j.Status)
		}
	})

	t.Run("nameless vehicle rows are skipped", func(t *testing.T) {
		db := newTestDB(t)
		svc := NewIntakeService(db)
		csr := seedUser(t, db, "CSR", models.RoleCSR)

		client, err := svc.CreateLead(csr.ID, CreateLeadInput{
			FullName:    "Mrs. Okafor",
			PhoneNumber: "08087654321",
			Vehicles: []VehicleInput{
				{Name: "Kia Sportage", Year: "2020"},
				{Name: "", Year: "2017", PlateNumber: "XYZ-999-AA"},
			},
		})
		require.NoError(t, err)

		var count int64
		require.NoError(t, db.Model(&models.Vehicle{}).Where("client_id = ?", client.ID).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("duplicate phone rolls everything back", func(t *testing.T) {
		db := newTestDB(t)
		svc := NewIntakeService(db)
		csr := seedUser(t, db, "CSR", models.RoleCSR)

		_, err := svc.CreateLead(csr.ID, CreateLeadInput{
			FullName: "First", PhoneNumber: "08011111111",
		})
		require.NoError(t, err)

		_, err = svc.CreateLead(csr.ID, CreateLeadInput{
			FullName:    "Second",
			PhoneNumber: "08011111111",
			Vehicles:    []VehicleInput{{Name: "Lexus RX"}},
		})
		assert.ErrorIs(t, err, ErrPhoneTaken)

		// No partial rows from the failed intake.
		var clients, vehicles int64
		require.NoError(t, db.Model(&models.Client{}).Count(&clients).Error)
		require.NoError(t, db.Model(&models.Vehicle{}).Count(&vehicles).Error)
		assert.Equal(t, int64(1), clients)
		assert.Equal(t, int64(0), vehicles)
	})

	t.Run("duplicate email", func(t *testing.T) {
		db := newTestDB(t)
		svc := NewIntakeService(db)
		csr := seedUser(t, db, "CSR", models.RoleCSR)

		_, err := svc.CreateLead(csr.ID, CreateLeadInput{
			FullName: "First", PhoneNumber: "08011111111", Email: "shared@example.com",
		})
		require.NoError(t, err)

		_, err = svc.CreateLead(csr.ID, CreateLeadInput{
			FullName: "Second", PhoneNumber: "08022222222", Email: "shared@example.com",
		})
		assert.ErrorIs(t, err, ErrEmailInUse)
	})

	t.Run("missing contact details", func(t *testing.T) {
		db := newTestDB(t)
		svc := NewIntakeService(db)
		csr := seedUser(t, db, "CSR", models.RoleCSR)

		_, err := svc.CreateLead(csr.ID, CreateLeadInput{FullName: "No Phone"})
		assert.Error(t, err)
	})
}

func TestUpdateClient(t *testing.T) {
	db := newTestDB(t)
	svc := NewIntakeService(db)
	csr := seedUser(t, db, "CSR", models.RoleCSR)

	client, err := svc.CreateLead(csr.ID, CreateLeadInput{
		FullName:    "Mr. Adebayo",
		PhoneNumber: "08012345678",
		Vehicles:    []VehicleInput{{Name: "Toyota Camry", Year: "2019"}},
	})
	require.NoError(t, err)

	var existing models.Vehicle
	require.NoError(t, db.First(&existing, "client_id = ?", client.ID).Error)

	t.Run("edits existing rows and opens jobs for new ones", func(t *testing.T) {
		_, err := svc.UpdateClient(client.ID, UpdateClientInput{
			FullName:    "Mr. A. Adebayo",
			PhoneNumber: "08012345678",
			Vehicles: []VehicleInput{
				{ID: existing.ID, Name: "Toyota Camry", Year: "2019", PlateNumber: "ABC-123-XY"},
				{Name: "Ford Ranger", Year: "2022"},
			},
		})
		require.NoError(t, err)

		var got models.Client
		require.NoError(t, db.First(&got, "id = ?", client.ID).Error)
		assert.Equal(t, "Mr. A. Adebayo", got.FullName)

		var updated models.Vehicle
		require.NoError(t, db.First(&updated, "id = ?", existing.ID).Error)
		require.NotNil(t, updated.PlateNumber)
		assert.Equal(t, "ABC-123-XY", *updated.PlateNumber)

		// The new vehicle enters the pipeline like a fresh lead.
		var jobs int64
		require.NoError(t, db.Model(&models.Job{}).
			Where("status = ?", models.StatusNewLead).Count(&jobs).Error)
		assert.Equal(t, int64(2), jobs)
	})

	t.Run("phone collision with another client", func(t *testing.T) {
		_, err := svc.CreateLead(csr.ID, CreateLeadInput{
			FullName: "Other", PhoneNumber: "08099999999",
		})
		require.NoError(t, err)

		_, err = svc.UpdateClient(client.ID, UpdateClientInput{
			FullName: "Mr. A. Adebayo", PhoneNumber: "08099999999",
		})
		assert.ErrorIs(t, err, ErrPhoneTaken)
	})

	t.Run("keeping your own phone is fine", func(t *testing.T) {
		_, err := svc.UpdateClient(client.ID, UpdateClientInput{
			FullName: "Mr. A. Adebayo", PhoneNumber: "08012345678",
		})
		assert.NoError(t, err)
	})

	t.Run("unknown client", func(t *testing.T) {
		_, err := svc.UpdateClient(uuid.New(), UpdateClientInput{
			FullName: "Ghost", PhoneNumber: "08000000000",
		})
		assert.ErrorIs(t, err, ErrClientNotFound)
	})
}

func TestAddVehicle(t *testing.T) {
	db := newTestDB(t)
	svc := NewIntakeService(db)
	csr := seedUser(t, db, "CSR", models.RoleCSR)

	client, err := svc.CreateLead(csr.ID, CreateLeadInput{
		FullName: "Mr. Adebayo", PhoneNumber: "08012345678",
	})
	require.NoError(t, err)

	vehicle, err := svc.AddVehicle(client.ID, VehicleInput{Name: "Hilux", Year: "2023"})
	require.NoError(t, err)

	var job models.Job
	require.NoError(t, db.First(&job, "vehicle_id = ?", vehicle.ID).Error)
	assert.Equal(t, models.StatusNewLead, job.Status)

	_, err = svc.AddVehicle(client.ID, VehicleInput{Year: "2023"})
	assert.Error(t, err)

	_, err = svc.AddVehicle(uuid.New(), VehicleInput{Name: "Hilux"})
	assert.ErrorIs(t, err, ErrClientNotFound)
}

func TestDeleteVehicle(t *testing.T) {
	db := newTestDB(t)
	svc := NewIntakeService(db)
	job := seedJob(t, db, models.StatusNewLead)

	require.NoError(t, svc.DeleteVehicle(job.VehicleID))

	var jobs, vehicles int64
	require.NoError(t, db.Model(&models.Job{}).Count(&jobs).Error)
	require.NoError(t, db.Model(&models.Vehicle{}).Count(&vehicles).Error)
	assert.Equal(t, int64(0), jobs)
	assert.Equal(t, int64(0), vehicles)

	assert.Error(t, svc.DeleteVehicle(uuid.New()))
}

func TestDeleteClient(t *testing.T) {
	db := newTestDB(t)
	svc := NewIntakeService(db)
	csr := seedUser(t, db, "CSR", models.RoleCSR)

	client, err := svc.CreateLead(csr.ID, CreateLeadInput{
		FullName:    "Mr. Adebayo",
		PhoneNumber: "08012345678",
		Vehicles:    []VehicleInput{{Name: "Camry"}, {Name: "CR-V"}},
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteClient(client.ID))

	var clients, vehicles, jobs int64
	require.NoError(t, db.Model(&models.Client{}).Count(&clients).Error)
	require.NoError(t, db.Model(&models.Vehicle{}).Count(&vehicles).Error)
	require.NoError(t, db.Model(&models.Job{}).Count(&jobs).Error)
	assert.Equal(t, int64(0), clients)
	assert.Equal(t, int64(0), vehicles)
	assert.Equal(t, int64(0), jobs)

	assert.ErrorIs(t, svc.DeleteClient(uuid.New()), ErrClientNotFound)
}
