package main

import (
	"log"
	"os"

	"tutorhub/internal/database"
	"tutorhub/internal/domain"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm/clause"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "tutorhub.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Order{},
		&domain.OrderFile{},
		&domain.Message{},
		&domain.Post{},
		&domain.PendingPayment{},
		&domain.ProctoredExam{},
		&domain.OnlineExam{},
		&domain.AtiModule{},
		&domain.OnlineClass{},
	); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// ================== ADMIN ==================
	log.Println("Creating admin user...")
	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := domain.User{
		Email:        "admin@tutorhub.local",
		PasswordHash: string(adminHash),
		Role:         domain.RoleAdmin,
		Name:         "Administrator",
		AuthProvider: domain.ProviderEmail,
	}
	db.Clauses(clause.OnConflict{DoNothing: true}).Create(&admin)
	log.Println("Admin: admin@tutorhub.local / admin123")

	// ================== REFERENCE CATALOGS ==================
	log.Println("Seeding landing catalogs...")

	proctored := []domain.ProctoredExam{
		{Name: "HESI A2", Provider: "Elsevier", Type: "Nursing Entrance", Website: "https://evolve.elsevier.com"},
		{Name: "TEAS 7", Provider: "ATI", Type: "Nursing Entrance", Website: "https://www.atitesting.com"},
		{Name: "NCLEX-RN", Provider: "Pearson VUE", Type: "Licensure", Website: "https://www.nclex.com"},
		{Name: "GRE", Provider: "ETS", Type: "Graduate Admission", Website: "https://www.ets.org/gre"},
		{Name: "GMAT", Provider: "GMAC", Type: "Graduate Admission", Website: "https://www.mba.com"},
	}
	db.Clauses(clause.OnConflict{DoNothing: true}).Create(&proctored)

	online := []domain.OnlineExam{
		{Name: "ProctorU Exam", ExamType: "Proctored", Online: true, Website: "https://www.proctoru.com"},
		{Name: "Examity Exam", ExamType: "Proctored", Online: true, Website: "https://www.examity.com"},
		{Name: "Honorlock Exam", ExamType: "Proctored", Online: true, Website: "https://honorlock.com"},
		{Name: "Respondus Exam", ExamType: "Lockdown Browser", Online: true, Website: "https://web.respondus.com"},
	}
	db.Clauses(clause.OnConflict{DoNothing: true}).Create(&online)

	ati := []domain.AtiModule{
		{Name: "ATI Fundamentals", Category: "Fundamentals"},
		{Name: "ATI Pharmacology", Category: "Pharmacology"},
		{Name: "ATI Med-Surg", Category: "Medical Surgical"},
		{Name: "ATI Maternal Newborn", Category: "OB"},
		{Name: "ATI Mental Health", Category: "Psych"},
		{Name: "ATI Comprehensive Predictor", Category: "Predictor"},
	}
	db.Clauses(clause.OnConflict{DoNothing: true}).Create(&ati)

	classes := []domain.OnlineClass{
		{Name: "MyMathLab", Type: "Math", Provider: "Pearson", Website: "https://www.pearsonmylabandmastering.com"},
		{Name: "MyStatLab", Type: "Statistics", Provider: "Pearson", Website: "https://www.pearsonmylabandmastering.com"},
		{Name: "WebAssign", Type: "Math & Science", Provider: "Cengage", Website: "https://www.webassign.net"},
		{Name: "ALEKS", Type: "Math & Chemistry", Provider: "McGraw Hill", Website: "https://www.aleks.com"},
		{Name: "Canvas Course", Type: "Full Class", Provider: "Instructure", Website: "https://www.instructure.com"},
	}
	db.Clauses(clause.OnConflict{DoNothing: true}).Create(&classes)

	log.Println("Seed complete.")
}
