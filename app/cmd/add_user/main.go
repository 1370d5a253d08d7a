package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/esrgdtfdrrthnfytdr/cocone/app/config"
	"github.com/esrgdtfdrrthnfytdr/cocone/app/database"
	"github.com/esrgdtfdrrthnfytdr/cocone/app/models"
	"github.com/esrgdtfdrrthnfytdr/cocone/app/routes/auth"
)

// Creates the first teacher account so someone can log in and manage the
// roster through the UI.
func main() {
	name := flag.String("name", "", "teacher display name")
	email := flag.String("email", "", "teacher login email")
	password := flag.String("password", "", "initial password (min 8 characters)")
	flag.Parse()

	if *name == "" || *email == "" || len(*password) < 8 {
		fmt.Println("usage: add_user -name NAME -email EMAIL -password PASSWORD")
		os.Exit(1)
	}

	config.InitDB()
	db := config.GetDB()
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		fmt.Printf("Migration failed: %v\n", err)
		os.Exit(1)
	}

	hashed, err := auth.HashPassword(*password)
	if err != nil {
		fmt.Printf("Error hashing password: %v\n", err)
		os.Exit(1)
	}

	teacher := &models.Teacher{Name: *name, Email: *email, Password: hashed}
	if err := database.CreateTeacher(db, teacher); err != nil {
		fmt.Printf("Error creating teacher: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Teacher created successfully: %s (%s), id=%d\n", teacher.Name, teacher.Email, teacher.TeacherID)
}
