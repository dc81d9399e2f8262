package parser

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/algorandfoundation/rustgen/internal/naming"
	"github.com/algorandfoundation/rustgen/oaserrors"
)

// httpMethods are the OpenAPI path item keys treated as operations, in the
// order they are visited so output is deterministic.
var httpMethods = []string{"get", "put", "post", "delete", "options", "head", "patch"}

// msgpackContentTypes are the content types that mark msgpack capability.
var msgpackContentTypes = map[string]bool{
	"application/msgpack":  true,
	"application/x-binary": true,
}

// Parser parses OpenAPI 3.x documents into a ParsedSpec.
//
// The zero value is usable; New sets the default no-op logger explicitly.
// A Parser is not safe for concurrent use; create one per goroutine.
type Parser struct {
	// Logger receives structured diagnostics during parsing.
	Logger Logger
}

// New creates a Parser with default settings.
func New() *Parser {
	return &Parser{Logger: NopLogger{}}
}

// Parse reads and parses the OpenAPI document at path. The file may be YAML
// or JSON.
func (p *Parser) Parse(path string) (*ParsedSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &oaserrors.DocumentError{Path: path, Message: "failed to read file", Cause: err}
	}
	spec, err := p.ParseBytes(data)
	if err != nil {
		if docErr, ok := err.(*oaserrors.DocumentError); ok && docErr.Path == "" {
			docErr.Path = path
		}
		return nil, err
	}
	return spec, nil
}

// ParseBytes parses an OpenAPI document from raw YAML or JSON bytes.
func (p *Parser) ParseBytes(data []byte) (*ParsedSpec, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &oaserrors.DocumentError{Message: "failed to decode document", Cause: err}
	}
	return p.ParseMap(doc)
}

// ParseReader parses an OpenAPI document from r.
func (p *Parser) ParseReader(r io.Reader) (*ParsedSpec, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &oaserrors.DocumentError{Message: "failed to read document", Cause: err}
	}
	return p.ParseBytes(data)
}

// ParseMap parses an already decoded OpenAPI document.
func (p *Parser) ParseMap(doc map[string]any) (*ParsedSpec, error) {
	if len(doc) == 0 {
		return nil, &oaserrors.DocumentError{Message: "document is empty or not a mapping"}
	}

	logger := p.Logger
	if logger == nil {
		logger = NopLogger{}
	}

	run := &parseRun{
		doc:        doc,
		rawSchemas: rawComponentSchemas(doc),
		pending:    map[string]pendingHoist{},
		logger:     logger,
	}
	return run.parse()
}

// pendingHoist is an inline response schema waiting to be promoted to a
// named schema once all operations have been visited.
type pendingHoist struct {
	operationID string
	schema      map[string]any
}

// parseRun holds the state of a single parse.
type parseRun struct {
	doc        map[string]any
	rawSchemas map[string]any
	pending    map[string]pendingHoist
	msgpackOps map[string]bool
	warnings   []string
	logger     Logger
}

func (r *parseRun) parse() (*ParsedSpec, error) {
	r.msgpackOps = map[string]bool{}

	operations, err := r.parseOperations()
	if err != nil {
		return nil, err
	}

	if err := r.mergePendingHoists(); err != nil {
		return nil, err
	}

	schemas := r.parseSchemas()
	r.propagateMsgpack(schemas)
	r.warnDuplicateFunctionNames(operations)

	spec := &ParsedSpec{
		Info:                 mapValue(r.doc, "info"),
		Servers:              mapSlice(r.doc["servers"]),
		Operations:           operations,
		Schemas:              schemas,
		ContentTypes:         r.collectContentTypes(),
		HasMsgpackOperations: len(r.msgpackOps) > 0,
		Warnings:             r.warnings,
	}
	r.logger.Info("parsed specification",
		"operations", len(spec.Operations),
		"schemas", len(spec.Schemas),
		"msgpack_operations", len(r.msgpackOps),
		"warnings", len(spec.Warnings))
	return spec, nil
}

func (r *parseRun) warnf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	r.warnings = append(r.warnings, msg)
	r.logger.Warn(msg)
}

// parseOperations walks paths in sorted order and methods in a fixed order
// so the resulting slice does not depend on map iteration.
func (r *parseRun) parseOperations() ([]*Operation, error) {
	paths := mapValue(r.doc, "paths")
	operations := make([]*Operation, 0, len(paths))

	for _, path := range sortedKeys(paths) {
		pathItem, ok := paths[path].(map[string]any)
		if !ok {
			continue
		}
		for _, method := range httpMethods {
			opData := lookupMethod(pathItem, method)
			if opData == nil {
				continue
			}
			op, err := r.parseOperation(path, strings.ToUpper(method), opData)
			if err != nil {
				return nil, err
			}
			if op == nil {
				continue
			}
			operations = append(operations, op)
			if op.SupportsMsgpack {
				r.msgpackOps[op.OperationID] = true
			}
		}
	}
	return operations, nil
}

// lookupMethod finds an operation under a path item regardless of key case.
func lookupMethod(pathItem map[string]any, method string) map[string]any {
	for key, value := range pathItem {
		if strings.ToLower(key) == method {
			op, _ := value.(map[string]any)
			return op
		}
	}
	return nil
}

func (r *parseRun) parseOperation(path, method string, opData map[string]any) (*Operation, error) {
	operationID, _ := opData["operationId"].(string)
	if operationID == "" {
		r.warnf("skipping %s %s: no operationId", method, path)
		return nil, nil
	}

	parameters := make([]*Parameter, 0)
	for _, paramAny := range anySlice(opData["parameters"]) {
		paramData, ok := paramAny.(map[string]any)
		if !ok {
			continue
		}
		param, err := r.parseParameter(operationID, paramData)
		if err != nil {
			return nil, err
		}
		if param != nil {
			parameters = append(parameters, param)
		}
	}

	// Sorted status order keeps the pending hoist deterministic when more
	// than one success response carries an inline schema: the last one wins.
	responses := map[string]*Response{}
	responsesData := mapValue(opData, "responses")
	for _, status := range sortedKeys(responsesData) {
		respData, ok := responsesData[status].(map[string]any)
		if !ok {
			continue
		}
		responses[status] = r.parseResponse(status, respData, operationID)
	}

	summary, _ := opData["summary"].(string)
	description, _ := opData["description"].(string)

	return newOperation(Operation{
		OperationID:                  operationID,
		Method:                       method,
		Path:                         path,
		Summary:                      summary,
		Description:                  description,
		Parameters:                   parameters,
		RequestBody:                  mapValue(opData, "requestBody"),
		Responses:                    responses,
		Tags:                         stringSlice(opData["tags"]),
		SupportsMsgpack:              detectOperationMsgpack(opData),
		RequestBodySupportsMsgpack:   requestBodySupportsMsgpack(opData),
		RequestBodySupportsTextPlain: requestBodySupportsTextPlain(opData),
	}), nil
}

func (r *parseRun) parseParameter(operationID string, paramData map[string]any) (*Parameter, error) {
	if ref, ok := paramData["$ref"].(string); ok {
		resolved, err := resolveReference(r.doc, ref)
		if err != nil {
			return nil, err
		}
		paramData = resolved
	}

	name, _ := paramData["name"].(string)
	if name == "" {
		r.warnf("skipping unnamed parameter in operation %s", operationID)
		return nil, nil
	}

	schema := mapValue(paramData, "schema")
	var enumValues []string
	if t, _ := schema["type"].(string); t == "string" {
		enumValues = stringSlice(schema["enum"])
	}

	in, _ := paramData["in"].(string)
	if in == "" {
		in = "query"
	}
	required, _ := paramData["required"].(bool)
	description, _ := paramData["description"].(string)

	return newParameter(Parameter{
		Name:        name,
		In:          in,
		RustType:    RustType(schema, r.rawSchemas, nil),
		Required:    required,
		Description: description,
		EnumValues:  enumValues,
	}), nil
}

// resolveReference walks a local JSON pointer such as
// #/components/parameters/limit through the document.
func resolveReference(doc map[string]any, ref string) (map[string]any, error) {
	parts := strings.Split(ref, "/")
	if len(parts) == 0 || parts[0] != "#" {
		return nil, &oaserrors.ReferenceError{Ref: ref, Message: "only local references are supported"}
	}
	current := any(doc)
	for _, part := range parts[1:] {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, &oaserrors.ReferenceError{Ref: ref, Message: fmt.Sprintf("segment %q is not a mapping", part)}
		}
		current, ok = m[part]
		if !ok {
			return nil, &oaserrors.ReferenceError{Ref: ref, Message: fmt.Sprintf("segment %q not found", part)}
		}
	}
	resolved, ok := current.(map[string]any)
	if !ok {
		return nil, &oaserrors.ReferenceError{Ref: ref, Message: "target is not a mapping"}
	}
	return resolved, nil
}

func (r *parseRun) parseResponse(status string, respData map[string]any, operationID string) *Response {
	content := mapValue(respData, "content")
	contentTypes := sortedKeys(content)
	description, _ := respData["description"].(string)

	return &Response{
		StatusCode:      status,
		Description:     description,
		RustType:        r.responseRustType(contentTypes, content, status, operationID, description),
		ContentTypes:    contentTypes,
		SupportsMsgpack: containsString(contentTypes, "application/msgpack"),
	}
}

// responseRustType maps a response body onto a Rust type. Inline 2xx object
// schemas are hoisted into a named schema matching the operationId; the hoist
// itself happens after all operations are parsed.
func (r *parseRun) responseRustType(contentTypes []string, content map[string]any, status, operationID, description string) string {
	if len(contentTypes) == 0 {
		return ""
	}
	first := mapValue(content, contentTypes[0])
	schema := mapValue(first, "schema")

	if shouldHoistResponseSchema(schema, status) {
		r.pending[operationID] = pendingHoist{
			operationID: operationID,
			schema:      hoistedSchema(schema, description),
		}
		r.logger.Debug("hoisting inline response schema", "operation", operationID, "status", status)
		return naming.ToPascalCase(operationID)
	}

	return RustType(schema, r.rawSchemas, nil)
}

// shouldHoistResponseSchema reports whether an inline success response schema
// deserves its own named model.
func shouldHoistResponseSchema(schema map[string]any, status string) bool {
	if !strings.HasPrefix(status, "2") {
		return false
	}
	if _, ok := schema["$ref"]; ok {
		return false
	}
	if t, _ := schema["type"].(string); t == "object" {
		if _, ok := schema["properties"]; ok {
			return true
		}
	}
	_, hasRequired := schema["required"]
	_, hasAllOf := schema["allOf"]
	_, hasOneOf := schema["oneOf"]
	return hasRequired || hasAllOf || hasOneOf
}

// hoistedSchema copies an inline schema, backfilling the response description.
func hoistedSchema(schema map[string]any, description string) map[string]any {
	copied := make(map[string]any, len(schema)+1)
	for k, v := range schema {
		copied[k] = v
	}
	if description != "" {
		if _, ok := copied["description"]; !ok {
			copied["description"] = description
		}
	}
	return copied
}

// mergePendingHoists promotes hoisted response schemas into the schema set.
// A hoist whose name is already taken by a component schema fails the parse.
func (r *parseRun) mergePendingHoists() error {
	if len(r.pending) == 0 {
		return nil
	}
	merged := make(map[string]any, len(r.rawSchemas)+len(r.pending))
	for name, data := range r.rawSchemas {
		merged[name] = data
	}
	for _, name := range sortedKeys(r.pending) {
		hoist := r.pending[name]
		if _, exists := r.rawSchemas[name]; exists {
			return &oaserrors.SchemaCollisionError{Name: name, OperationID: hoist.operationID}
		}
		merged[name] = hoist.schema
	}
	r.rawSchemas = merged
	return nil
}

func (r *parseRun) parseSchemas() map[string]*Schema {
	schemas := make(map[string]*Schema, len(r.rawSchemas))
	for name, dataAny := range r.rawSchemas {
		data, ok := dataAny.(map[string]any)
		if !ok {
			continue
		}
		schemas[name] = r.parseSchema(name, data)
	}
	return schemas
}

func (r *parseRun) parseSchema(name string, data map[string]any) *Schema {
	schemaType, _ := data["type"].(string)
	if schemaType == "" {
		schemaType = "object"
	}
	requiredFields := stringSlice(data["required"])
	description, _ := data["description"].(string)

	var underlying string
	var properties []*Property
	if schemaType == "array" {
		underlying = "Vec<" + RustType(mapValue(data, "items"), r.rawSchemas, nil) + ">"
	} else {
		properties = r.parseProperties(mapValue(data, "properties"), requiredFields)
	}

	var enumValues []string
	if schemaType == "string" {
		enumValues = stringSlice(data["enum"])
	}

	return newSchema(Schema{
		Name:               name,
		SchemaType:         schemaType,
		Description:        description,
		Properties:         properties,
		RequiredFields:     requiredFields,
		Extensions:         CaptureExtensions(data),
		UnderlyingRustType: underlying,
		EnumValues:         enumValues,
	})
}

// parseProperties builds the property list in sorted name order.
func (r *parseRun) parseProperties(propsData map[string]any, requiredFields []string) []*Property {
	properties := make([]*Property, 0, len(propsData))
	for _, propName := range sortedKeys(propsData) {
		propData, ok := propsData[propName].(map[string]any)
		if !ok {
			continue
		}
		properties = append(properties, r.parseProperty(propName, propData, requiredFields))
	}
	return properties
}

func (r *parseRun) parseProperty(name string, propData map[string]any, requiredFields []string) *Property {
	description, _ := propData["description"].(string)
	format, _ := propData["format"].(string)

	return newProperty(Property{
		Name:            name,
		RustType:        RustType(propData, r.rawSchemas, nil),
		Required:        containsString(requiredFields, name),
		Description:     description,
		IsBase64Encoded: detectBinaryField(propData),
		Extensions:      CaptureExtensions(propData),
		Format:          format,
		Items:           r.parseItemsProperty(name, propData),
	})
}

// parseItemsProperty captures one level of array item detail, enough to spot
// base64 or signed transaction markers on the element type.
func (r *parseRun) parseItemsProperty(name string, propData map[string]any) *Property {
	if t, _ := propData["type"].(string); t != "array" {
		return nil
	}
	itemsData, ok := propData["items"].(map[string]any)
	if !ok {
		return nil
	}
	description, _ := itemsData["description"].(string)
	format, _ := itemsData["format"].(string)

	return newProperty(Property{
		Name:            name + "_item",
		RustType:        RustType(itemsData, r.rawSchemas, nil),
		Required:        false,
		Description:     description,
		IsBase64Encoded: detectBinaryField(itemsData),
		Extensions:      CaptureExtensions(itemsData),
		Format:          format,
	})
}

// collectContentTypes gathers every request and response content type in the
// document, sorted.
func (r *parseRun) collectContentTypes() []string {
	seen := map[string]bool{}
	paths := mapValue(r.doc, "paths")
	for _, pathItemAny := range paths {
		pathItem, ok := pathItemAny.(map[string]any)
		if !ok {
			continue
		}
		for _, opAny := range pathItem {
			opData, ok := opAny.(map[string]any)
			if !ok {
				continue
			}
			for ct := range mapValue(mapValue(opData, "requestBody"), "content") {
				seen[ct] = true
			}
			for _, respAny := range mapValue(opData, "responses") {
				respData, ok := respAny.(map[string]any)
				if !ok {
					continue
				}
				for ct := range mapValue(respData, "content") {
					seen[ct] = true
				}
			}
		}
	}
	return sortedKeys(seen)
}

// warnDuplicateFunctionNames flags operationIds that normalize to the same
// Rust function name, which would collide in the generated client.
func (r *parseRun) warnDuplicateFunctionNames(operations []*Operation) {
	byName := map[string]string{}
	for _, op := range operations {
		if prev, ok := byName[op.RustFunctionName]; ok {
			r.warnf("operations %q and %q both normalize to function %q",
				prev, op.OperationID, op.RustFunctionName)
			continue
		}
		byName[op.RustFunctionName] = op.OperationID
	}
}

// detectOperationMsgpack reports whether an operation declares a msgpack
// content type on its request or response bodies.
func detectOperationMsgpack(opData map[string]any) bool {
	content := mapValue(mapValue(opData, "requestBody"), "content")
	for ct := range content {
		if msgpackContentTypes[ct] {
			return true
		}
	}
	if binary, ok := content["application/x-binary"].(map[string]any); ok {
		schema := mapValue(binary, "schema")
		if format, _ := schema["format"].(string); format == "binary" {
			return true
		}
	}
	for _, respAny := range mapValue(opData, "responses") {
		respData, ok := respAny.(map[string]any)
		if !ok {
			continue
		}
		for ct := range mapValue(respData, "content") {
			if msgpackContentTypes[ct] {
				return true
			}
		}
	}
	return false
}

// requestBodySupportsMsgpack reports whether the request body itself can be
// sent as msgpack, or as raw binary bytes.
func requestBodySupportsMsgpack(opData map[string]any) bool {
	content := mapValue(mapValue(opData, "requestBody"), "content")
	if _, ok := content["application/msgpack"]; ok {
		return true
	}
	if binary, ok := content["application/x-binary"].(map[string]any); ok {
		schema := mapValue(binary, "schema")
		format, _ := schema["format"].(string)
		return format == "binary"
	}
	return false
}

func requestBodySupportsTextPlain(opData map[string]any) bool {
	content := mapValue(mapValue(opData, "requestBody"), "content")
	_, ok := content["text/plain"]
	return ok
}

func rawComponentSchemas(doc map[string]any) map[string]any {
	return mapValue(mapValue(doc, "components"), "schemas")
}

// mapValue reads a nested mapping, returning an empty map for anything else.
func mapValue(m map[string]any, key string) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	v, _ := m[key].(map[string]any)
	if v == nil {
		return map[string]any{}
	}
	return v
}

func anySlice(v any) []any {
	s, _ := v.([]any)
	return s
}

func mapSlice(v any) []map[string]any {
	items := anySlice(v)
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

// stringSlice converts a decoded array to strings, formatting non-string
// scalars such as enum integers.
func stringSlice(v any) []string {
	items := anySlice(v)
	if len(items) == 0 {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		} else {
			out = append(out, fmt.Sprintf("%v", item))
		}
	}
	return out
}

func containsString(items []string, target string) bool {
	for _, item := range items {
		if item == target {
			return true
		}
	}
	return false
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
