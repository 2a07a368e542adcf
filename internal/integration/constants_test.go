package integration_test

const (
	TestMovieID      = 1
	TestTheaterID    = 1
	TestScreeningID  = 1
	SmallScreeningID = 3
	TestDate         = "2030-05-10"
	TestEmail        = "test@example.com"
	TestTimeZone     = "Asia/Seoul"
	WebhookSecret    = "whsec_integration"
	PaymentBaseUrl   = "https://payments.example.com/checkout"
)
