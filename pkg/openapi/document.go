package openapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// Version is the OpenAPI version emitted by Document.
const Version = "3.0.3"

const (
	schemaFormRecord   = "FormRecord"
	schemaProductEntry = "ProductEntry"
	schemaWizardState  = "WizardState"
	schemaEnvelope     = "Submission"
)

type config struct {
	title    string
	version  string
	basePath string
}

// Option customises the generated document.
type Option func(*config)

// WithInfo sets the document title and API version.
func WithInfo(title, version string) Option {
	return func(cfg *config) {
		if title = strings.TrimSpace(title); title != "" {
			cfg.title = title
		}
		if version = strings.TrimSpace(version); version != "" {
			cfg.version = version
		}
	}
}

// WithBasePath sets the prefix the wizard routes are mounted under.
func WithBasePath(base string) Option {
	return func(cfg *config) {
		base = "/" + strings.Trim(strings.TrimSpace(base), "/")
		if base == "/" {
			base = ""
		}
		cfg.basePath = base
	}
}

// Document builds the API description.
func Document(options ...Option) *openapi3.T {
	cfg := config{title: "Form Wizard", version: "1.0.0", basePath: "/wizard"}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	doc := &openapi3.T{
		OpenAPI: Version,
		Info: &openapi3.Info{
			Title:       cfg.title,
			Description: "Multi-step application form: company info, products, hardware and review.",
			Version:     cfg.version,
		},
		Paths:      openapi3.NewPaths(),
		Components: &openapi3.Components{Schemas: componentSchemas()},
	}
	schemas := doc.Components.Schemas
	ref := func(name string) *openapi3.SchemaRef {
		return openapi3.NewSchemaRef(refPath(name), schemas[name].Value)
	}

	session := func() openapi3.Parameters {
		return openapi3.Parameters{{Value: openapi3.NewPathParameter("id").
			WithDescription("Wizard session id.").
			WithSchema(openapi3.NewUUIDSchema())}}
	}
	base := cfg.basePath + "/{id}"

	doc.AddOperation("/", http.MethodGet, operation("startSession", "Start a wizard session",
		openapi3.WithStatus(http.StatusSeeOther, response("Redirect to the new session."))))

	doc.AddOperation(base, http.MethodGet, withParams(operation("renderWizard", "Render the active step as HTML",
		openapi3.WithStatus(http.StatusOK, htmlResponse("Wizard page.")),
		openapi3.WithStatus(http.StatusNotFound, errorResponse("Unknown session."))), session()))

	doc.AddOperation(base+"/state", http.MethodGet, withParams(operation("getWizardState", "Current wizard state",
		openapi3.WithStatus(http.StatusOK, jsonResponse("Wizard state.", ref(schemaWizardState))),
		openapi3.WithStatus(http.StatusNotFound, errorResponse("Unknown session."))), session()))

	stepBody := openapi3.NewObjectSchema().
		WithProperty("step", openapi3.NewStringSchema()).
		WithRequired([]string{"step"})
	doc.AddOperation(base+"/step", http.MethodPost, withBody(withParams(formOperation("selectStep", "Select a step"), session()), stepBody))

	doc.AddOperation(base+"/fields", http.MethodPost, withBody(withParams(formOperation("updateFields", "Apply field values"), session()), fieldsSchema(false)))

	doc.AddOperation(base+"/next", http.MethodPost, withBody(withParams(formOperation("advanceFromProduct", "Apply product values and advance"), session()), fieldsSchema(true)))

	removeParams := append(session(), &openapi3.ParameterRef{Value: openapi3.NewPathParameter("index").
		WithDescription("Zero-based product index.").
		WithSchema(openapi3.NewIntegerSchema().WithMin(0))})
	doc.AddOperation(base+"/products/{index}/remove", http.MethodPost, withBody(withParams(formOperation("removeProduct", "Remove a product"), removeParams), fieldsSchema(false)))

	doc.AddOperation(base+"/submit", http.MethodPost, withParams(operation("submitWizard", "Submit the record",
		openapi3.WithStatus(http.StatusOK, htmlResponse("Confirmation page.")),
		openapi3.WithStatus(http.StatusNotFound, errorResponse("Unknown session.")),
		openapi3.WithStatus(http.StatusUnprocessableEntity, errorResponse("Submission failed."))), session()))

	return doc
}

// JSON renders the document, validating it first.
func JSON(ctx context.Context, options ...Option) ([]byte, error) {
	doc := Document(options...)
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("openapi: validate document: %w", err)
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("openapi: encode document: %w", err)
	}
	return data, nil
}

func refPath(name string) string {
	return "#/components/schemas/" + name
}

// componentSchemas builds the shared schemas. References between them carry
// the resolved value so the document validates without a loader pass.
func componentSchemas() openapi3.Schemas {
	schemas := openapi3.Schemas{}
	add := func(name string, schema *openapi3.Schema) *openapi3.SchemaRef {
		schemas[name] = openapi3.NewSchemaRef("", schema)
		return openapi3.NewSchemaRef(refPath(name), schema)
	}

	product := openapi3.NewObjectSchema().
		WithProperty("productName", openapi3.NewStringSchema()).
		WithProperty("version", openapi3.NewStringSchema()).
		WithProperty("availabilityDate", openapi3.NewStringSchema())
	product.Description = "One product. availabilityDate is kept as entered, usually YYYY-MM-DD."
	productRef := add(schemaProductEntry, product)

	products := openapi3.NewArraySchema().WithMinItems(1)
	products.Items = productRef
	record := openapi3.NewObjectSchema().
		WithProperty("companyName", openapi3.NewStringSchema()).
		WithProperty("email", openapi3.NewStringSchema()).
		WithProperty("website", openapi3.NewStringSchema()).
		WithProperty("products", products).
		WithProperty("hardwareSystem", openapi3.NewStringSchema()).
		WithProperty("operatingSystem", openapi3.NewStringSchema())
	record.Description = "The aggregate record handed to the submitter."
	recordRef := add(schemaFormRecord, record)

	state := openapi3.NewObjectSchema().
		WithProperty("active", openapi3.NewStringSchema()).
		WithProperty("steps", openapi3.NewArraySchema().WithItems(openapi3.NewStringSchema())).
		WithPropertyRef("record", recordRef).
		WithProperty("pendingAddProduct", openapi3.NewBoolSchema())
	add(schemaWizardState, openapi3.NewObjectSchema().
		WithProperty("id", openapi3.NewUUIDSchema()).
		WithProperty("state", state))

	envelope := openapi3.NewObjectSchema().
		WithProperty("id", openapi3.NewUUIDSchema()).
		WithProperty("submittedAt", openapi3.NewDateTimeSchema()).
		WithPropertyRef("record", recordRef)
	envelope.Description = "Payload posted by the HTTP submitter in JSON mode."
	add(schemaEnvelope, envelope)

	return schemas
}

// fieldsSchema describes the url-encoded field posts. Product fields use
// dotted names such as products.0.productName.
func fieldsSchema(withCheckbox bool) *openapi3.Schema {
	s := openapi3.NewObjectSchema().
		WithProperty("companyName", openapi3.NewStringSchema()).
		WithProperty("email", openapi3.NewStringSchema()).
		WithProperty("website", openapi3.NewStringSchema()).
		WithProperty("hardwareSystem", openapi3.NewStringSchema()).
		WithProperty("operatingSystem", openapi3.NewStringSchema()).
		WithProperty("step", openapi3.NewStringSchema())
	product := openapi3.NewStringSchema()
	s.AdditionalProperties = openapi3.AdditionalProperties{Schema: &openapi3.SchemaRef{Value: product}}
	if withCheckbox {
		s.WithProperty("addAnotherProduct", openapi3.NewStringSchema().WithEnum("on"))
	}
	return s
}

func operation(id, summary string, responses ...openapi3.NewResponsesOption) *openapi3.Operation {
	op := openapi3.NewOperation()
	op.OperationID = id
	op.Summary = summary
	op.Tags = []string{"wizard"}
	op.Responses = openapi3.NewResponses(responses...)
	return op
}

func formOperation(id, summary string) *openapi3.Operation {
	return operation(id, summary,
		openapi3.WithStatus(http.StatusSeeOther, response("Redirect to the wizard page.")),
		openapi3.WithStatus(http.StatusBadRequest, errorResponse("Malformed form body.")),
		openapi3.WithStatus(http.StatusNotFound, errorResponse("Unknown session.")),
		openapi3.WithStatus(http.StatusUnprocessableEntity, htmlResponse("Operation rejected; the page is re-rendered with a notice.")),
	)
}

func withParams(op *openapi3.Operation, params openapi3.Parameters) *openapi3.Operation {
	op.Parameters = params
	return op
}

func withBody(op *openapi3.Operation, schema *openapi3.Schema) *openapi3.Operation {
	op.RequestBody = &openapi3.RequestBodyRef{Value: openapi3.NewRequestBody().
		WithRequired(true).
		WithSchema(schema, []string{"application/x-www-form-urlencoded"})}
	return op
}

func response(description string) *openapi3.ResponseRef {
	return &openapi3.ResponseRef{Value: openapi3.NewResponse().WithDescription(description)}
}

func htmlResponse(description string) *openapi3.ResponseRef {
	return &openapi3.ResponseRef{Value: openapi3.NewResponse().
		WithDescription(description).
		WithContent(openapi3.NewContentWithSchema(openapi3.NewStringSchema(), []string{"text/html"}))}
}

func jsonResponse(description string, schema *openapi3.SchemaRef) *openapi3.ResponseRef {
	return &openapi3.ResponseRef{Value: openapi3.NewResponse().
		WithDescription(description).
		WithJSONSchemaRef(schema)}
}

func errorResponse(description string) *openapi3.ResponseRef {
	return &openapi3.ResponseRef{Value: openapi3.NewResponse().
		WithDescription(description).
		WithContent(openapi3.NewContentWithSchema(openapi3.NewStringSchema(), []string{"text/plain"}))}
}
