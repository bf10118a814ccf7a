package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/example/kerapido/internal/apperr"
	"github.com/example/kerapido/internal/database"
	"github.com/example/kerapido/internal/models"
	"github.com/example/kerapido/internal/utils"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := database.SeedCatalogs(db); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return New(db)
}

func requireKind(t *testing.T, err error, kind apperr.Kind) {
	t.Helper()
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("want apperr kind %d, got %v", kind, err)
	}
	if appErr.Kind != kind {
		t.Fatalf("kind = %d (%s), want %d", appErr.Kind, appErr.Detail, kind)
	}
}

var userSeq int

func testUserParams() CreateUserParams {
	userSeq++
	return CreateUserParams{
		FirstName:  "Ana",
		LastName:   "Diaz",
		Email:      fmt.Sprintf("user%d@example.com", userSeq),
		Phone:      fmt.Sprintf("+53 5%07d", userSeq),
		Password:   "sup3rsecret",
		NationalID: fmt.Sprintf("9001%07d", userSeq),
	}
}

func mustSignup(t *testing.T, s *Store) *models.User {
	t.Helper()
	user, err := s.Signup(testUserParams())
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	return user
}

func mustCreateDriver(t *testing.T, s *Store) (*models.User, *models.Driver) {
	t.Helper()
	user, err := s.CreateUser(testUserParams())
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	userSeq++
	driver, err := s.CreateDriver(CreateDriverParams{
		UserID:        user.ID,
		LicenseNumber: fmt.Sprintf("LIC-%06d", userSeq),
	})
	if err != nil {
		t.Fatalf("create driver: %v", err)
	}
	return user, driver
}

func mustCreateVehicle(t *testing.T, s *Store, driverID uuid.UUID) *models.Vehicle {
	t.Helper()
	userSeq++
	vehicle, err := s.CreateVehicle(CreateVehicleParams{
		DriverID: driverID,
		Brand:    "Lada",
		Model:    "2107",
		Plate:    fmt.Sprintf("P%06d", userSeq),
	})
	if err != nil {
		t.Fatalf("create vehicle: %v", err)
	}
	return vehicle
}

func TestCreateUser_DuplicateEmailConflict(t *testing.T) {
	s := openTestStore(t)

	params := testUserParams()
	if _, err := s.CreateUser(params); err != nil {
		t.Fatalf("first create: %v", err)
	}

	params.Phone = "+53 50000000"
	params.NationalID = "90010000000"
	_, err := s.CreateUser(params)
	requireKind(t, err, apperr.KindConflict)
}

func TestCreateUser_PasswordIsHashed(t *testing.T) {
	s := openTestStore(t)

	params := testUserParams()
	user, err := s.CreateUser(params)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if user.PasswordHash == params.Password {
		t.Fatal("password stored in plaintext")
	}
	if !utils.CheckPassword(user.PasswordHash, params.Password) {
		t.Error("stored hash does not verify against the original password")
	}
}

func TestSignup_CreatesCustomerProfile(t *testing.T) {
	s := openTestStore(t)

	user := mustSignup(t, s)
	if !user.IsCustomer {
		t.Error("signup must set the customer role flag")
	}

	customer, err := s.FindCustomerByUser(user.ID)
	if err != nil {
		t.Fatalf("customer profile missing after signup: %v", err)
	}
	if customer.UserID != user.ID {
		t.Errorf("customer.UserID = %s, want %s", customer.UserID, user.ID)
	}
}

func TestUpdateUser_PartialMerge(t *testing.T) {
	s := openTestStore(t)

	user := mustSignup(t, s)
	oldHash := user.PasswordHash

	newLast := "Perez"
	newPassword := "otherpassword"
	updated, err := s.UpdateUser(user.ID, UserPatch{
		LastName: &newLast,
		Password: &newPassword,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if updated.LastName != "Perez" {
		t.Errorf("LastName = %q, want Perez", updated.LastName)
	}
	if updated.FirstName != user.FirstName {
		t.Errorf("FirstName changed by a patch that did not set it")
	}
	if updated.Email != user.Email {
		t.Errorf("Email changed by a patch that did not set it")
	}
	if updated.PasswordHash == oldHash {
		t.Error("password hash unchanged after password patch")
	}
	if !utils.CheckPassword(updated.PasswordHash, newPassword) {
		t.Error("new password does not verify; patch must hash before storing")
	}
}

func TestDeleteUser_NotFound(t *testing.T) {
	s := openTestStore(t)
	requireKind(t, s.DeleteUser(uuid.New()), apperr.KindNotFound)
}

func TestCreateDriver_PromotesUser(t *testing.T) {
	s := openTestStore(t)

	user, err := s.CreateUser(testUserParams())
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if user.IsDriver {
		t.Fatal("precondition: user starts without the driver flag")
	}

	driver, err := s.CreateDriver(CreateDriverParams{UserID: user.ID, LicenseNumber: "LIC-A1"})
	if err != nil {
		t.Fatalf("create driver: %v", err)
	}
	if driver.UserID != user.ID {
		t.Errorf("driver.UserID = %s, want %s", driver.UserID, user.ID)
	}

	reloaded, err := s.GetUser(user.ID)
	if err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if !reloaded.IsDriver {
		t.Error("is_driver flag should flip true on driver creation")
	}

	// Second profile for the same user.
	_, err = s.CreateDriver(CreateDriverParams{UserID: user.ID, LicenseNumber: "LIC-A2"})
	requireKind(t, err, apperr.KindConflict)
}

func TestCreateDriver_UnknownUser(t *testing.T) {
	s := openTestStore(t)
	_, err := s.CreateDriver(CreateDriverParams{UserID: uuid.New(), LicenseNumber: "LIC-B1"})
	requireKind(t, err, apperr.KindNotFound)
}

func TestAddDriverService_DuplicatePairConflict(t *testing.T) {
	s := openTestStore(t)
	_, driver := mustCreateDriver(t, s)

	serviceType := models.ServiceType{Name: "taxi"}
	if err := s.DB().Create(&serviceType).Error; err != nil {
		t.Fatalf("seed service type: %v", err)
	}

	if _, err := s.AddDriverService(driver.ID, serviceType.ID, nil); err != nil {
		t.Fatalf("first association: %v", err)
	}
	_, err := s.AddDriverService(driver.ID, serviceType.ID, nil)
	requireKind(t, err, apperr.KindConflict)

	services, err := s.ListDriverServices(driver.ID)
	if err != nil {
		t.Fatalf("list services: %v", err)
	}
	if len(services) != 1 {
		t.Errorf("len(services) = %d, want 1", len(services))
	}
}

func TestCreateVehicle_PlateConflictAndReuseAfterDelete(t *testing.T) {
	s := openTestStore(t)
	_, driverA := mustCreateDriver(t, s)
	_, driverB := mustCreateDriver(t, s)

	vehicle, err := s.CreateVehicle(CreateVehicleParams{
		DriverID: driverA.ID, Brand: "Lada", Model: "2107", Plate: "HAB-123",
	})
	if err != nil {
		t.Fatalf("create vehicle: %v", err)
	}

	_, err = s.CreateVehicle(CreateVehicleParams{
		DriverID: driverB.ID, Brand: "Moskvich", Model: "412", Plate: "HAB-123",
	})
	requireKind(t, err, apperr.KindConflict)

	if err := s.DeleteVehicle(vehicle.ID); err != nil {
		t.Fatalf("delete vehicle: %v", err)
	}
	if _, err := s.CreateVehicle(CreateVehicleParams{
		DriverID: driverB.ID, Brand: "Moskvich", Model: "412", Plate: "HAB-123",
	}); err != nil {
		t.Errorf("plate freed by deletion should register: %v", err)
	}
}

func TestCreateVehicle_UnknownDriver(t *testing.T) {
	s := openTestStore(t)
	_, err := s.CreateVehicle(CreateVehicleParams{
		DriverID: uuid.New(), Brand: "Lada", Model: "2107", Plate: "HAB-999",
	})
	requireKind(t, err, apperr.KindNotFound)
}

func TestCreateServiceRequest_StartsPending(t *testing.T) {
	s := openTestStore(t)
	customerUser := mustSignup(t, s)
	customer, err := s.FindCustomerByUser(customerUser.ID)
	if err != nil {
		t.Fatalf("find customer: %v", err)
	}

	request, err := s.CreateServiceRequest(CreateServiceRequestParams{
		CustomerID: customer.ID,
		OriginLat:  23.1136,
		OriginLon:  -82.3666,
	})
	if err != nil {
		t.Fatalf("create request: %v", err)
	}

	if request.RequestStatusID == nil {
		t.Fatal("request has no status")
	}
	var status models.RequestStatus
	if err := s.DB().First(&status, "id = ?", *request.RequestStatusID).Error; err != nil {
		t.Fatalf("load status: %v", err)
	}
	if status.Name != models.RequestStatusPending {
		t.Errorf("status = %q, want %q", status.Name, models.RequestStatusPending)
	}
}

func TestCreateAssignment_Lifecycle(t *testing.T) {
	s := openTestStore(t)

	customerUser := mustSignup(t, s)
	customer, err := s.FindCustomerByUser(customerUser.ID)
	if err != nil {
		t.Fatalf("find customer: %v", err)
	}
	driverUser, driver := mustCreateDriver(t, s)
	vehicle := mustCreateVehicle(t, s, driver.ID)

	request, err := s.CreateServiceRequest(CreateServiceRequestParams{
		CustomerID: customer.ID, OriginLat: 23.1136, OriginLon: -82.3666,
	})
	if err != nil {
		t.Fatalf("create request: %v", err)
	}

	assignment, err := s.CreateAssignment(request.ID, driver.ID, vehicle.ID)
	if err != nil {
		t.Fatalf("create assignment: %v", err)
	}
	if assignment.ServiceRequestID != request.ID {
		t.Errorf("assignment.ServiceRequestID = %s, want %s", assignment.ServiceRequestID, request.ID)
	}

	// The request advanced out of pending.
	reloaded, err := s.GetServiceRequest(request.ID)
	if err != nil {
		t.Fatalf("reload request: %v", err)
	}
	var status models.RequestStatus
	if err := s.DB().First(&status, "id = ?", *reloaded.RequestStatusID).Error; err != nil {
		t.Fatalf("load status: %v", err)
	}
	if status.Name != models.RequestStatusAssigned {
		t.Errorf("status = %q, want %q", status.Name, models.RequestStatusAssigned)
	}

	// One assignment per request.
	_, err = s.CreateAssignment(request.ID, driver.ID, vehicle.ID)
	requireKind(t, err, apperr.KindConflict)

	// Participants resolve to the linked user ids.
	customerUserID, driverUserID, err := s.AssignmentParticipants(assignment)
	if err != nil {
		t.Fatalf("participants: %v", err)
	}
	if customerUserID != customerUser.ID || driverUserID != driverUser.ID {
		t.Errorf("participants = (%s, %s), want (%s, %s)",
			customerUserID, driverUserID, customerUser.ID, driverUser.ID)
	}
}

func TestCreateAssignment_ParentsResolvedFirst(t *testing.T) {
	s := openTestStore(t)
	_, driver := mustCreateDriver(t, s)
	vehicle := mustCreateVehicle(t, s, driver.ID)

	_, err := s.CreateAssignment(uuid.New(), driver.ID, vehicle.ID)
	requireKind(t, err, apperr.KindNotFound)
}

func TestSetFinalPrice_Idempotent(t *testing.T) {
	s := openTestStore(t)

	customerUser := mustSignup(t, s)
	customer, _ := s.FindCustomerByUser(customerUser.ID)
	_, driver := mustCreateDriver(t, s)
	vehicle := mustCreateVehicle(t, s, driver.ID)

	request, err := s.CreateServiceRequest(CreateServiceRequestParams{
		CustomerID: customer.ID, OriginLat: 23.0, OriginLon: -82.0,
	})
	if err != nil {
		t.Fatalf("create request: %v", err)
	}
	assignment, err := s.CreateAssignment(request.ID, driver.ID, vehicle.ID)
	if err != nil {
		t.Fatalf("create assignment: %v", err)
	}

	first, err := s.SetFinalPrice(assignment.ID, 125.50)
	if err != nil {
		t.Fatalf("set price: %v", err)
	}
	second, err := s.SetFinalPrice(assignment.ID, 125.50)
	if err != nil {
		t.Fatalf("set price again: %v", err)
	}

	if first.FinalPrice == nil || second.FinalPrice == nil {
		t.Fatal("final price not set")
	}
	if *first.FinalPrice != *second.FinalPrice {
		t.Errorf("price after repeat = %v, want %v", *second.FinalPrice, *first.FinalPrice)
	}

	_, err = s.SetFinalPrice(uuid.New(), 10)
	requireKind(t, err, apperr.KindNotFound)
}

func TestCreatePayment_OnePerAssignment(t *testing.T) {
	s := openTestStore(t)

	customerUser := mustSignup(t, s)
	customer, _ := s.FindCustomerByUser(customerUser.ID)
	_, driver := mustCreateDriver(t, s)
	vehicle := mustCreateVehicle(t, s, driver.ID)
	request, err := s.CreateServiceRequest(CreateServiceRequestParams{
		CustomerID: customer.ID, OriginLat: 23.0, OriginLon: -82.0,
	})
	if err != nil {
		t.Fatalf("create request: %v", err)
	}
	assignment, err := s.CreateAssignment(request.ID, driver.ID, vehicle.ID)
	if err != nil {
		t.Fatalf("create assignment: %v", err)
	}

	if _, err := s.CreatePayment(CreatePaymentParams{AssignmentID: assignment.ID, Amount: 125.50}); err != nil {
		t.Fatalf("create payment: %v", err)
	}

	// The unique index is the enforcement; the error must still surface as
	// Conflict, not as a raw storage error.
	_, err = s.CreatePayment(CreatePaymentParams{AssignmentID: assignment.ID, Amount: 125.50})
	requireKind(t, err, apperr.KindConflict)

	_, err = s.CreatePayment(CreatePaymentParams{AssignmentID: uuid.New(), Amount: 10})
	requireKind(t, err, apperr.KindNotFound)
}

func TestNotifications(t *testing.T) {
	s := openTestStore(t)
	user := mustSignup(t, s)

	if _, err := s.CreateNotification(user.ID, "Viaje asignado", "Tu viaje fue asignado"); err != nil {
		t.Fatalf("create notification: %v", err)
	}
	if _, err := s.CreateNotification(uuid.New(), "x", "y"); err == nil {
		t.Error("notification for unknown user should fail")
	}

	notifications, err := s.ListNotificationsByUser(user.ID)
	if err != nil {
		t.Fatalf("list notifications: %v", err)
	}
	if len(notifications) != 1 {
		t.Errorf("len(notifications) = %d, want 1", len(notifications))
	}
}
