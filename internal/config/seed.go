package config

import (
	"log"

	"golang.org/x/crypto/bcrypt"

	"autofine/internal/models"
)

// seedViolations is the reference fine catalog. Types covered by the
// escalation policy keep their own pricing; the catalog backs
// everything else.
var seedViolations = []models.Violation{
	{ViolationType: models.ViolationSpeeding, FineAmount: 1000},
	{ViolationType: models.ViolationSignalJumping, FineAmount: 500},
	{ViolationType: "Wrong Parking", FineAmount: 1500},
	{ViolationType: models.ViolationNoHelmet, FineAmount: 500},
	{ViolationType: "Red Light Violation", FineAmount: 1000},
	{ViolationType: "Wrong Lane", FineAmount: 750},
	{ViolationType: "Overloading", FineAmount: 2000},
}

var seedCameras = []models.Camera{
	{CameraID: "CAM001", Location: "Main Street, Signal 1", Latitude: 28.7041, Longitude: 77.1025, IsActive: true},
	{CameraID: "CAM002", Location: "Highway Road, Toll Plaza", Latitude: 28.6141, Longitude: 77.2025, IsActive: true},
	{CameraID: "CAM003", Location: "Downtown, Signal 5", Latitude: 28.8041, Longitude: 77.3025, IsActive: true},
}

// Seed inserts the violation catalog, the camera registry, and the
// bootstrap admin account if they are missing. Idempotent.
func Seed() {
	for _, v := range seedViolations {
		if err := DB.Where("violation_type = ?", v.ViolationType).
			FirstOrCreate(&models.Violation{}, v).Error; err != nil {
			log.Fatalf("seeding violation %q failed: %v", v.ViolationType, err)
		}
	}

	for _, cam := range seedCameras {
		if err := DB.Where("camera_id = ?", cam.CameraID).
			FirstOrCreate(&models.Camera{}, cam).Error; err != nil {
			log.Fatalf("seeding camera %q failed: %v", cam.CameraID, err)
		}
	}

	var count int64
	if err := DB.Model(&models.User{}).Where("role = ?", "admin").Count(&count).Error; err != nil {
		log.Fatalf("checking admin account failed: %v", err)
	}
	if count == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte(getEnv("ADMIN_PASSWORD", "admin123")), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("hashing admin password failed: %v", err)
		}
		admin := models.User{
			Name:     "Traffic Admin",
			Email:    getEnv("ADMIN_EMAIL", "admin@autofine.local"),
			Password: string(hash),
			Role:     "admin",
		}
		if err := DB.Create(&admin).Error; err != nil {
			log.Fatalf("creating admin account failed: %v", err)
		}
		log.Println("Created bootstrap admin account")
	}
}
