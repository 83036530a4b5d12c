package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"
	"syscall"

	"github.com/gonzalogodoyp13/NOTIFICA-IA-sub001/config"
	"github.com/gonzalogodoyp13/NOTIFICA-IA-sub001/db"
	"github.com/gonzalogodoyp13/NOTIFICA-IA-sub001/models"
	"github.com/gonzalogodoyp13/NOTIFICA-IA-sub001/services"
	"golang.org/x/term"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	if err := db.Initialize(cfg.DBPath, cfg.Environment); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.AutoMigrate(&models.Oficina{}, &models.User{}, &models.Session{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	reader := bufio.NewReader(os.Stdin)

	fmt.Println("=== Create New User ===")
	fmt.Println()

	fmt.Print("Office name: ")
	oficinaNombre, _ := reader.ReadString('\n')
	oficinaNombre = strings.TrimSpace(oficinaNombre)

	fmt.Print("Office email: ")
	oficinaEmail, _ := reader.ReadString('\n')
	oficinaEmail = strings.TrimSpace(oficinaEmail)

	fmt.Print("Name: ")
	nombre, _ := reader.ReadString('\n')
	nombre = strings.TrimSpace(nombre)

	fmt.Print("Email: ")
	email, _ := reader.ReadString('\n')
	email = strings.TrimSpace(email)

	fmt.Print("Role (admin/receptor) [receptor]: ")
	role, _ := reader.ReadString('\n')
	role = strings.TrimSpace(role)
	if role == "" {
		role = models.RoleReceptor
	}
	if role != models.RoleAdmin && role != models.RoleReceptor {
		log.Fatalf("Unknown role %q", role)
	}

	// Get password securely
	fmt.Print("Password: ")
	passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		log.Fatalf("Failed to read password: %v", err)
	}
	password := string(passwordBytes)
	fmt.Println() // New line after password input

	// Validate inputs
	if oficinaNombre == "" || oficinaEmail == "" || nombre == "" || email == "" || password == "" {
		log.Fatal("Office name, office email, name, email, and password are required")
	}

	if len(password) < 8 {
		log.Fatal("Password must be at least 8 characters long")
	}

	// Check if user already exists
	var existingUser models.User
	if err := db.DB.Where("email = ?", email).First(&existingUser).Error; err == nil {
		log.Fatalf("User with email %s already exists", email)
	}

	// Reuse the office if it already exists, otherwise create it
	var oficina models.Oficina
	if err := db.DB.Where("nombre = ?", oficinaNombre).First(&oficina).Error; err != nil {
		oficina = models.Oficina{Nombre: oficinaNombre, Email: oficinaEmail}
		if err := db.DB.Create(&oficina).Error; err != nil {
			log.Fatalf("Failed to create office: %v", err)
		}
	}

	// Hash password
	hashedPassword, err := services.HashPassword(password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	user := &models.User{
		OficinaID:    oficina.ID,
		Nombre:       nombre,
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         role,
		IsActive:     true,
	}

	if err := db.DB.Create(user).Error; err != nil {
		log.Fatalf("Failed to create user: %v", err)
	}

	fmt.Println()
	fmt.Println("✓ User created successfully!")
	fmt.Printf("  ID: %s\n", user.ID)
	fmt.Printf("  Name: %s\n", user.Nombre)
	fmt.Printf("  Email: %s\n", user.Email)
	fmt.Printf("  Office: %s\n", oficina.Nombre)
	fmt.Printf("  Role: %s\n", user.Role)
}
