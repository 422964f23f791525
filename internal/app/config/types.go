package config

type (
	DriverConfig struct {
		MongoDB  MongoDB
		Redis    Redis
		RabbitMQ RabbitMQ
		Logger   Logger
	}

	MongoDB struct {
		Port     string
		Host     string
		DbName   string
		Username string
		Password string
	}
	Redis struct {
		Host     string
		Port     string
		Password string
	}
	RabbitMQ struct {
		Port     string
		Host     string
		Username string
		Password string
	}
	Logger struct {
		Level               string
		OutputFileName      string
		OutputErrorFileName string
	}

	InternalConfig struct {
		App            App
		JWT            JWT
		PaymentGateway PaymentGateway
		Booking        Booking
	}

	App struct {
		Env                       string
		Port                      string
		Version                   string
		Timezone                  string
		EndpointPrefix            string
		MaxRequests               int
		MaxTimeRequestsPerSeconds int
		ShutdownTimeout           int
		BookingEventsQueue        string
	}

	JWT struct {
		Secret string
	}

	PaymentGateway struct {
		BaseUrl       string
		ApiKey        string
		IntegrationID string
		IframeBaseUrl string
		IframeID      string
		HmacSecret    string
		Currency      string
	}

	Booking struct {
		ReservationTTLMinutes int
		SweepCronSpec         string
	}
)
