// Package openapi describes the wizard's HTTP surface and submission payload
// as an OpenAPI 3 document built with kin-openapi.
package openapi
