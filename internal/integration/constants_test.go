package integration_test

const (
	dbName         = "theatre_box_office"
	dbUser         = "test_user"
	dbPassword     = "test_password"
	dbImageName    = "postgres:17-alpine"
	cacheImageName = "redis:7"
	migrationsPath = "file://../../migrations"
)

const (
	TestUserEmail     = "test@example.com"
	TestOtherEmail    = "other@example.com"
	TestStaffEmail    = "admin@example.com"
	TestUserPassword  = "Test123!@#"
	TestUserId        = 1
	TestOtherUserId   = 2
	TestStaffUserId   = 3
	TestPerformanceId = 1
	TestStudioId      = 2

	TestRateLimitCapacity = 10
	TestRateLimitPrefix   = "rate_limit:test"
)
