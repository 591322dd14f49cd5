package telemetry

// Telemetry configurations of the saga participants
var (
	EnrollmentServiceConfig = Config{
		ServiceName:    "enrollment-service",
		ServiceVersion: "1.0.0",
	}

	PaymentsServiceConfig = Config{
		ServiceName:    "payments-service",
		ServiceVersion: "1.0.0",
	}

	InventoryServiceConfig = Config{
		ServiceName:    "inventory-service",
		ServiceVersion: "1.0.0",
	}

	NotificationServiceConfig = Config{
		ServiceName:    "notification-service",
		ServiceVersion: "1.0.0",
	}
)

// WithOTLPEndpoint enables OTLP export to endpoint. An empty endpoint leaves
// only the Prometheus exporter.
func (c Config) WithOTLPEndpoint(endpoint string) Config {
	c.OTLPEndpoint = endpoint
	c.ExportOTLP = endpoint != ""
	return c
}

// WithVersion sets the service version for a config
func (c Config) WithVersion(version string) Config {
	if version != "" {
		c.ServiceVersion = version
	}
	return c
}
