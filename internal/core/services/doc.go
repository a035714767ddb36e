// Package services implements the driving port interfaces.
// Services contain the core logic and orchestrate calls to driven
// ports: the decoder registry and the configuration store.
package services
