package types

type Config struct {
	Environment     string `envconfig:"ENVIRONMENT" default:"development"`
	ServerPort      uint   `envconfig:"SERVER_PORT" default:"8080"`
	DatabaseURL     string `envconfig:"DATABASE_URL"`
	ReadTimeoutSec  uint   `envconfig:"READ_TIMEOUT_SEC" default:"10"`
	WriteTimeoutSec uint   `envconfig:"WRITE_TIMEOUT_SEC" default:"15"`

	// Public base URL used to build the gateway callback and return URLs
	BaseURL string `envconfig:"BASE_URL" default:"http://localhost:8080"`

	// Chapa payment gateway
	ChapaSecretKey    string  `envconfig:"CHAPA_SECRET_KEY"`
	ChapaBaseURL      string  `envconfig:"CHAPA_BASE_URL" default:"https://api.chapa.co"`
	MinDonationAmount float64 `envconfig:"MIN_DONATION_AMOUNT" default:"50"`
	DonationCurrency  string  `envconfig:"DONATION_CURRENCY" default:"ETB"`

	// Accepted leading digits for local (Ethiopian) phone numbers
	LocalPhonePrefixes []string `envconfig:"LOCAL_PHONE_PREFIXES" default:"09,07"`

	// The original dashboard showed every payment while debugging but the
	// admin interface filtered to successful ones. Which list the payments
	// page shows is a deployment choice.
	AdminShowAllPayments bool `envconfig:"ADMIN_SHOW_ALL_PAYMENTS" default:"true"`

	// Cognito Auth
	CognitoUserPoolID string `envconfig:"COGNITO_USER_POOL_ID"`
	CognitoClientID   string `envconfig:"COGNITO_CLIENT_ID"`
	CognitoIssuerURL  string `envconfig:"COGNITO_ISSUER_URL"`
	StaffGroupName    string `envconfig:"STAFF_GROUP_NAME" default:"staff"`

	// Event image storage
	S3BucketName    string `envconfig:"S3_BUCKET_NAME" default:"rotom-event-images"`
	S3PublicBaseURL string `envconfig:"S3_PUBLIC_BASE_URL"`

	// Auth Configuration
	CookieName       string `envconfig:"SESSION_COOKIE_NAME" default:"session_id"`
	SessionMaxAgeSec int    `envconfig:"SESSION_MAX_AGE_SEC" default:"604800"` // 7 days

	// Cookie encryption keys (base64 encoded)
	// openssl rand -base64 32
	// to generate values
	CookieHashKey  string `envconfig:"COOKIE_HASH_KEY"`  // 32 or 64 bytes
	CookieBlockKey string `envconfig:"COOKIE_BLOCK_KEY"` // 16, 24, or 32 bytes
}
