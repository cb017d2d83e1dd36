// Package constants holds string values shared between config and infra.
package constants

const (
	// PubSubProviderLocal posts events to a local HTTP push endpoint.
	PubSubProviderLocal = "local"
	// PubSubProviderGoogle publishes events to Google Cloud Pub/Sub.
	PubSubProviderGoogle = "google"

	// EnvDevelop is the env.env value used on developer machines.
	EnvDevelop = "develop"
)
