package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trackmasterhq/trackmaster-backend/internal/models"
)

func TestSchedule(t *testing.T) {
	db := newTestDB(t)
	svc := NewLifecycleService(db, NewInventoryService(db))

	t.Run("stamps the install date", func(t *testing.T) {
		job := seedJob(t, db, models.StatusNewLead)
		date := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

		_, err := svc.Schedule(job.ID, date)
		require.NoError(t, err)

		got := reloadJob(t, db, job.ID)
		assert.Equal(t, models.StatusScheduled, got.Status)
		require.NotNil(t, got.InstallDate)
		assert.True(t, got.InstallDate.Equal(date))
	})

	t.Run("re-scheduling overwrites the date", func(t *testing.T) {
		job := seedJob(t, db, models.StatusScheduled)
		date := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)

		_, err := svc.Schedule(job.ID, date)
		require.NoError(t, err)

		got := reloadJob(t, db, job.ID)
		require.NotNil(t, got.InstallDate)
		assert.True(t, got.InstallDate.Equal(date))
	})

	t.Run("rejects jobs past installation", func(t *testing.T) {
		job := seedJob(t, db, models.StatusConfigured)
		_, err := svc.Schedule(job.ID, time.Now())
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("a claimed job must be released first", func(t *testing.T) {
		installer := seedUser(t, db, "Installer A", models.RoleInstaller)
		job := seedJob(t, db, models.StatusNewLead)
		_, err := NewClaimService(db).Claim(job.ID, installer.ID)
		require.NoError(t, err)

		_, err = svc.Schedule(job.ID, time.Now())
		assert.ErrorIs(t, err, ErrInvalidTransition)

		// The installer keeps the job.
		got := reloadJob(t, db, job.ID)
		assert.Equal(t, models.StatusInProgress, got.Status)
		require.NotNil(t, got.InstallerID)
		assert.Equal(t, installer.ID, *got.InstallerID)
	})
}

func TestMarkLost(t *testing.T) {
	db := newTestDB(t)
	svc := NewLifecycleService(db, NewInventoryService(db))

	t.Run("requires a reason", func(t *testing.T) {
		job := seedJob(t, db, models.StatusNewLead)
		_, err := svc.MarkLost(job.ID, "")
		assert.Error(t, err)
	})

	t.Run("drops the job with its reason", func(t *testing.T) {
		job := seedJob(t, db, models.StatusScheduled)

		_, err := svc.MarkLost(job.ID, "client went with a competitor")
		require.NoError(t, err)

		got := reloadJob(t, db, job.ID)
		assert.Equal(t, models.StatusLeadLost, got.Status)
		require.NotNil(t, got.LostReason)
		assert.Equal(t, "client went with a competitor", *got.LostReason)
	})

	t.Run("an active job cannot be lost", func(t *testing.T) {
		job := seedJob(t, db, models.StatusActive)
		_, err := svc.MarkLost(job.ID, "whatever")
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})
}

func TestSubmitInstallation(t *testing.T) {
	t.Run("consumes both units and moves the job to QC", func(t *testing.T) {
		db := newTestDB(t)
		svc := NewLifecycleService(db, NewInventoryService(db))
		installer := seedUser(t, db, "Installer A", models.RoleInstaller)
		job := seedJob(t, db, models.StatusNewLead)
		_, err := NewClaimService(db).Claim(job.ID, installer.ID)
		require.NoError(t, err)

		device := seedDevice(t, db, "356938035643809", models.UnitInStock)
		sim := seedSimCard(t, db, "08031234567", models.UnitInStock)

		_, err = svc.SubmitInstallation(SubmitInstallationInput{
			JobID:       job.ID,
			DeviceID:    device.ID,
			SimCardID:   sim.ID,
			PlateNumber: "ABC-123-XY",
			VehicleName: "Toyota Camry",
		})
		require.NoError(t, err)

		got := reloadJob(t, db, job.ID)
		assert.Equal(t, models.StatusPendingQC, got.Status)
		require.NotNil(t, got.DeviceID)
		assert.Equal(t, device.ID, *got.DeviceID)
		require.NotNil(t, got.SimCardID)
		assert.Equal(t, sim.ID, *got.SimCardID)
		assert.NotNil(t, got.InstallDate)

		var gotDevice models.Device
		require.NoError(t, db.First(&gotDevice, "id = ?", device.ID).Error)
		assert.Equal(t, models.UnitInstalled, gotDevice.Status)
		require.NotNil(t, gotDevice.JobID)
		assert.Equal(t, job.ID, *gotDevice.JobID)

		var gotSim models.SimCard
		require.NoError(t, db.First(&gotSim, "id = ?", sim.ID).Error)
		assert.Equal(t, models.UnitInstalled, gotSim.Status)

		var vehicle models.Vehicle
		require.NoError(t, db.First(&vehicle, "id = ?", job.VehicleID).Error)
		assert.Equal(t, "Toyota Camry", vehicle.Name)
		require.NotNil(t, vehicle.PlateNumber)
		assert.Equal(t, "ABC-123-XY", *vehicle.PlateNumber)
	})

	t.Run("a consumed tracker cannot be reused", func(t *testing.T) {
		db := newTestDB(t)
		svc := NewLifecycleService(db, NewInventoryService(db))
		installer := seedUser(t, db, "Installer A", models.RoleInstaller)
		claims := NewClaimService(db)

		jobA := seedJob(t, db, models.StatusNewLead)
		jobB := seedJob(t, db, models.StatusNewLead)
		_, err := claims.Claim(jobA.ID, installer.ID)
		require.NoError(t, err)
		_, err = claims.Claim(jobB.ID, installer.ID)
		require.NoError(t, err)

		device := seedDevice(t, db, "356938035643809", models.UnitInStock)
		simA := seedSimCard(t, db, "08031234567", models.UnitInStock)
		simB := seedSimCard(t, db, "08039876543", models.UnitInStock)

		_, err = svc.SubmitInstallation(SubmitInstallationInput{
			JobID: jobA.ID, DeviceID: device.ID, SimCardID: simA.ID,
		})
		require.NoError(t, err)

		_, err = svc.SubmitInstallation(SubmitInstallationInput{
			JobID: jobB.ID, DeviceID: device.ID, SimCardID: simB.ID,
		})
		assert.ErrorIs(t, err, ErrUnitUnavailable)

		// The tracker still belongs to job A.
		var gotDevice models.Device
		require.NoError(t, db.First(&gotDevice, "id = ?", device.ID).Error)
		require.NotNil(t, gotDevice.JobID)
		assert.Equal(t, jobA.ID, *gotDevice.JobID)
	})

	t.Run("rolls everything back when the SIM is unavailable", func(t *testing.T) {
		db := newTestDB(t)
		svc := NewLifecycleService(db, NewInventoryService(db))
		installer := seedUser(t, db, "Installer A", models.RoleInstaller)
		job := seedJob(t, db, models.StatusNewLead)
		_, err := NewClaimService(db).Claim(job.ID, installer.ID)
		require.NoError(t, err)

		device := seedDevice(t, db, "356938035643809", models.UnitInStock)
		sim := seedSimCard(t, db, "08031234567", models.UnitInstalled)

		_, err = svc.SubmitInstallation(SubmitInstallationInput{
			JobID: job.ID, DeviceID: device.ID, SimCardID: sim.ID,
		})
		assert.ErrorIs(t, err, ErrUnitUnavailable)

		// Job unchanged, tracker back in stock.
		got := reloadJob(t, db, job.ID)
		assert.Equal(t, models.StatusInProgress, got.Status)
		assert.Nil(t, got.DeviceID)

		var gotDevice models.Device
		require.NoError(t, db.First(&gotDevice, "id = ?", device.ID).Error)
		assert.Equal(t, models.UnitInStock, gotDevice.Status)
		assert.Nil(t, gotDevice.JobID)
	})

	t.Run("only an in-progress job can submit", func(t *testing.T) {
		db := newTestDB(t)
		svc := NewLifecycleService(db, NewInventoryService(db))
		job := seedJob(t, db, models.StatusNewLead)
		device := seedDevice(t, db, "356938035643809", models.UnitInStock)
		sim := seedSimCard(t, db, "08031234567", models.UnitInStock)

		_, err := svc.SubmitInstallation(SubmitInstallationInput{
			JobID: job.ID, DeviceID: device.ID, SimCardID: sim.ID,
		})
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})
}

func TestCompleteConfiguration(t *testing.T) {
	t.Run("verifies hardware and configures the job", func(t *testing.T) {
		db := newTestDB(t)
		svc := NewLifecycleService(db, NewInventoryService(db))
		installer := seedUser(t, db, "Installer A", models.RoleInstaller)
		job := seedJob(t, db, models.StatusNewLead)
		_, err := NewClaimService(db).Claim(job.ID, installer.ID)
		require.NoError(t, err)

		device := seedDevice(t, db, "356938035643809", models.UnitInStock)
		sim := seedSimCard(t, db, "08031234567", models.UnitInStock)
		_, err = svc.SubmitInstallation(SubmitInstallationInput{
			JobID: job.ID, DeviceID: device.ID, SimCardID: sim.ID,
		})
		require.NoError(t, err)

		_, err = svc.CompleteConfiguration(CompleteConfigurationInput{
			JobID:         job.ID,
			IMEI:          "356938035643809",
			SimNumber:     "08031234567",
			PlatformID:    "TRK-0042",
			InstallerName: "Installer A",
		})
		require.NoError(t, err)

		got := reloadJob(t, db, job.ID)
		assert.Equal(t, models.StatusConfigured, got.Status)
		assert.True(t, got.ServerConfig)
		assert.Equal(t, "TRK-0042", got.PlatformID)
		assert.Equal(t, "Installer A", got.InstallerName)
		assert.NotNil(t, got.ConfigurationDate)
	})

	t.Run("duplicate IMEI leaves the job untouched", func(t *testing.T) {
		db := newTestDB(t)
		svc := NewLifecycleService(db, NewInventoryService(db))
		installer := seedUser(t, db, "Installer A", models.RoleInstaller)
		job := seedJob(t, db, models.StatusNewLead)
		_, err := NewClaimService(db).Claim(job.ID, installer.ID)
		require.NoError(t, err)

		// Another tracker already carries this IMEI.
		seedDevice(t, db, "999000111222333", models.UnitInstalled)

		device := seedDevice(t, db, "356938035643809", models.UnitInStock)
		sim := seedSimCard(t, db, "08031234567", models.UnitInStock)
		_, err = svc.SubmitInstallation(SubmitInstallationInput{
			JobID: job.ID, DeviceID: device.ID, SimCardID: sim.ID,
		})
		require.NoError(t, err)

		_, err = svc.CompleteConfiguration(CompleteConfigurationInput{
			JobID:      job.ID,
			IMEI:       "999000111222333",
			PlatformID: "TRK-0042",
		})
		assert.ErrorIs(t, err, ErrIMEITaken)

		got := reloadJob(t, db, job.ID)
		assert.Equal(t, models.StatusPendingQC, got.Status)
		assert.False(t, got.ServerConfig)
	})

	t.Run("only a QC job can be configured", func(t *testing.T) {
		db := newTestDB(t)
		svc := NewLifecycleService(db, NewInventoryService(db))
		job := seedJob(t, db, models.StatusNewLead)

		_, err := svc.CompleteConfiguration(CompleteConfigurationInput{
			JobID: job.ID, IMEI: "356938035643809", PlatformID: "TRK-1",
		})
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})
}

func TestActivate(t *testing.T) {
	db := newTestDB(t)
	svc := NewLifecycleService(db, NewInventoryService(db))

	t.Run("marks the job live and payment due", func(t *testing.T) {
		job := seedJob(t, db, models.StatusConfigured)

		_, err := svc.Activate(job.ID)
		require.NoError(t, err)

		got := reloadJob(t, db, job.ID)
		assert.Equal(t, models.StatusActive, got.Status)
		assert.True(t, got.Onboarded)
		assert.Equal(t, models.PaymentDue, got.PaymentStatus)
	})

	t.Run("keeps an already-paid job paid", func(t *testing.T) {
		job := seedJob(t, db, models.StatusConfigured)
		require.NoError(t, db.Model(job).Update("payment_status", models.PaymentPaid).Error)

		_, err := svc.Activate(job.ID)
		require.NoError(t, err)

		got := reloadJob(t, db, job.ID)
		assert.Equal(t, models.PaymentPaid, got.PaymentStatus)
	})

	t.Run("cannot activate before configuration", func(t *testing.T) {
		job := seedJob(t, db, models.StatusPendingQC)
		_, err := svc.Activate(job.ID)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})
}
