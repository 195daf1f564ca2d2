package database

import (
	"context"
	"fmt"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	// Load env
	_ "github.com/joho/godotenv/autoload"

	m "PeopleDesk-backend/internal/model"
	"PeopleDesk-backend/internal/utilities"
)

var testDBInstance *DBinstanceStruct
var teardown func(context.Context, ...testcontainers.TerminateOption) error

// Exported test users & records
var (
	TestAdminUser m.User
	TestStaffUser m.User

	// Add exported plain password
	TestSeedPassword = "SeedPass123!"

	TestCategory1 m.JobCategory
	TestCategory2 m.JobCategory

	TestEmployee1 m.Employee
	TestEmployee2 m.Employee

	TestOpening1 m.JobOpening
	TestOpening2 m.JobOpening
)

// GetTestDB starts a PostgreSQL test container and returns a teardown function,
// the DB instance, and any error encountered during setup.
func GetTestDB() (func(context.Context, ...testcontainers.TerminateOption) error, *DBinstanceStruct, error) {

	if testDBInstance != nil && teardown != nil {
		return teardown, testDBInstance, nil
	}

	// Database configuration
	var (
		dbName = "database"
		dbPwd  = "password"
		dbUser = "user"
	)

	dbContainer, err := postgres.Run(
		context.Background(),
		"postgres:latest",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPwd),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second)),
	)
	if err != nil {
		return nil, nil, err
	}

	dbHost, err := dbContainer.Host(context.Background())
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	dbPort, err := dbContainer.MappedPort(context.Background(), nat.Port("5432/tcp"))
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	config := &DBConfig{
		useConstr: true,
		Constr:    fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable", dbHost, dbPort.Port(), dbUser, dbPwd, dbName),
	}

	db, err := NewDBInstance(config)
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	// Seed categories, employees, openings and accounts
	if err := seedTestData(db); err != nil {
		_ = dbContainer.Terminate(context.Background())
		return nil, nil, err
	}

	testDBInstance = db
	teardown = dbContainer.Terminate

	return dbContainer.Terminate, db, nil
}

// seedTestData inserts sample categories, employees, openings and user
// accounts if the database is empty.
func seedTestData(db *DBinstanceStruct) error {
	var categoryCount int64
	if err := db.Model(&m.JobCategory{}).Count(&categoryCount).Error; err != nil {
		return err
	}
	if categoryCount > 0 {
		return loadTestData(db)
	}

	categories := []m.JobCategory{
		{CategoryName: "Engineering", Active: true},
		{CategoryName: "Human Resources", Active: true},
	}
	if err := db.Create(&categories).Error; err != nil {
		return err
	}
	TestCategory1 = categories[0]
	TestCategory2 = categories[1]

	joining1 := time.Date(2022, 3, 14, 0, 0, 0, 0, time.UTC)
	joining2 := time.Date(2023, 7, 1, 0, 0, 0, 0, time.UTC)
	employees := []m.Employee{
		{
			EmployeeCode: "EMP-0001",
			Active:       true,
			EditableEmployeeInfo: m.EditableEmployeeInfo{
				FirstName:     "Alice",
				LastName:      "Nguyen",
				Email:         ptr("alice@example.com"),
				Tel:           ptr("0100000001"),
				Designation:   "Backend Engineer",
				Department:    "Engineering",
				DateOfJoining: &joining1,
				Salary:        "52000",
			},
		},
		{
			EmployeeCode: "EMP-0002",
			Active:       true,
			EditableEmployeeInfo: m.EditableEmployeeInfo{
				FirstName:     "Bob",
				LastName:      "Somsak",
				Email:         ptr("bob@example.com"),
				Tel:           ptr("0100000002"),
				Designation:   "HR Generalist",
				Department:    "Human Resources",
				DateOfJoining: &joining2,
				Salary:        "38000",
			},
		},
	}
	if err := db.Create(&employees).Error; err != nil {
		return err
	}
	TestEmployee1 = employees[0]
	TestEmployee2 = employees[1]

	// Pre-hash shared password for all seeded users
	hashedPwd, errHash := utilities.HashPassword(TestSeedPassword)
	if errHash != nil {
		return errHash
	}

	users := []m.User{
		{
			ID:       uuid.New(),
			Username: "admin_user",
			Email:    ptr("admin@example.com"),
			Role:     m.RoleAdmin,
			Password: hashedPwd,
		},
		{
			ID:         uuid.New(),
			Username:   "staff_user",
			Email:      ptr("staff@example.com"),
			Role:       m.RoleStaff,
			Password:   hashedPwd,
			EmployeeID: &TestEmployee1.ID,
		},
	}
	if err := db.Create(&users).Error; err != nil {
		return err
	}
	TestAdminUser = users[0]
	TestStaffUser = users[1]

	exp := time.Now().AddDate(0, 1, 0)
	active := true
	openings := []m.JobOpening{
		{
			JobCategoryID: TestCategory1.ID,
			EditableOpeningInfo: m.EditableOpeningInfo{
				Title:        "Backend Engineer",
				Desc:         "Work on Go services and the database layer.",
				Requirements: "Go basics; SQL familiarity",
				Location:     "Chennai (Hybrid)",
				Type:         "Full-time",
				Salary:       "As per industry standards",
				Tags:         pq.StringArray{"go", "backend", "api"},
				Active:       &active,
				Expiring:     &exp,
			},
		},
		{
			JobCategoryID: TestCategory2.ID,
			EditableOpeningInfo: m.EditableOpeningInfo{
				Title:        "HR Executive",
				Desc:         "Support recruitment and onboarding.",
				Requirements: "Good communication skills",
				Location:     "Remote",
				Type:         "Full-time",
				Salary:       "Negotiable",
				Tags:         pq.StringArray{"hr", "recruitment"},
				Active:       &active,
			},
		},
	}
	if err := db.Create(&openings).Error; err != nil {
		return err
	}
	TestOpening1 = openings[0]
	TestOpening2 = openings[1]

	return nil
}

// loadTestData populates exported variables when records already exist.
func loadTestData(db *DBinstanceStruct) error {
	if err := db.First(&TestCategory1, "category_name = ?", "Engineering").Error; err != nil {
		return err
	}
	if err := db.First(&TestCategory2, "category_name = ?", "Human Resources").Error; err != nil {
		return err
	}

	if err := db.First(&TestEmployee1, "employee_code = ?", "EMP-0001").Error; err != nil {
		return err
	}
	if err := db.First(&TestEmployee2, "employee_code = ?", "EMP-0002").Error; err != nil {
		return err
	}

	if err := db.First(&TestAdminUser, "username = ?", "admin_user").Error; err != nil {
		return err
	}
	if err := db.First(&TestStaffUser, "username = ?", "staff_user").Error; err != nil {
		return err
	}

	var openings []m.JobOpening
	if err := db.Order("id ASC").Limit(2).Find(&openings).Error; err == nil {
		if len(openings) > 0 {
			TestOpening1 = openings[0]
		}
		if len(openings) > 1 {
			TestOpening2 = openings[1]
		}
	}

	return nil
}

// ptr helper
func ptr[T any](v T) *T { return &v }
