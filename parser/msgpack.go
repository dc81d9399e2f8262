package parser

// propagateMsgpack decides which schemas implement msgpack serialization.
//
// When no operation declares a msgpack content type, each schema is judged
// on its own vendor extensions. Otherwise msgpack capability flows from the
// root schemas (bodies of msgpack operations and extension-flagged schemas)
// through every schema they reference, transitively.
func (r *parseRun) propagateMsgpack(schemas map[string]*Schema) {
	if len(r.msgpackOps) == 0 {
		for name, schema := range schemas {
			schema.ImplementsMsgpack = shouldImplementMsgpack(rawSchema(r.rawSchemas, name), false)
		}
		return
	}

	graph := r.buildSchemaDependencyGraph()
	roots := r.msgpackRootSchemas()

	reachable := map[string]bool{}
	queue := sortedKeys(roots)
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		if reachable[name] {
			continue
		}
		reachable[name] = true
		for _, dep := range sortedKeys(graph[name]) {
			if !reachable[dep] {
				queue = append(queue, dep)
			}
		}
	}

	for name, schema := range schemas {
		schema.ImplementsMsgpack = shouldImplementMsgpack(rawSchema(r.rawSchemas, name), reachable[name])
		if schema.ImplementsMsgpack {
			r.logger.Debug("schema implements msgpack", "schema", name)
		}
	}
}

// shouldImplementMsgpack checks a raw schema for signed transaction markers
// at the schema, property, and array item level. Local markers always win;
// reachability from a msgpack operation is the fallback.
func shouldImplementMsgpack(raw map[string]any, reachableFromMsgpackOp bool) bool {
	if rawTruthy(raw, ExtSignedTxn) {
		return true
	}
	for _, propAny := range mapValue(raw, "properties") {
		prop, ok := propAny.(map[string]any)
		if !ok {
			continue
		}
		if rawTruthy(prop, ExtSignedTxn) {
			return true
		}
		if t, _ := prop["type"].(string); t == "array" {
			if rawTruthy(mapValue(prop, "items"), ExtSignedTxn) {
				return true
			}
		}
	}
	return reachableFromMsgpackOp
}

// buildSchemaDependencyGraph maps every schema name onto the set of schema
// names it references through properties, items, and composition keywords.
func (r *parseRun) buildSchemaDependencyGraph() map[string]map[string]bool {
	graph := make(map[string]map[string]bool, len(r.rawSchemas))
	for name, dataAny := range r.rawSchemas {
		refs := map[string]bool{}
		collectSchemaRefs(dataAny, refs)
		graph[name] = refs
	}
	return graph
}

func collectSchemaRefs(part any, refs map[string]bool) {
	switch v := part.(type) {
	case map[string]any:
		if ref, ok := v["$ref"].(string); ok {
			refs[refName(ref)] = true
		}
		for _, prop := range mapValue(v, "properties") {
			collectSchemaRefs(prop, refs)
		}
		if items, ok := v["items"]; ok {
			collectSchemaRefs(items, refs)
		}
		for _, key := range []string{"allOf", "oneOf", "anyOf"} {
			for _, sub := range anySlice(v[key]) {
				collectSchemaRefs(sub, refs)
			}
		}
	case []any:
		for _, item := range v {
			collectSchemaRefs(item, refs)
		}
	}
}

// msgpackRootSchemas collects the schemas that seed msgpack propagation:
// referenced bodies of msgpack operations, extension-flagged schemas, and
// hoisted response schemas of msgpack operations.
func (r *parseRun) msgpackRootSchemas() map[string]bool {
	roots := r.msgpackSchemasFromOperations()
	for name, dataAny := range r.rawSchemas {
		if data, ok := dataAny.(map[string]any); ok && shouldImplementMsgpack(data, false) {
			roots[name] = true
		}
	}
	r.addHoistedMsgpackRoots(roots)
	return roots
}

// msgpackSchemasFromOperations finds schemas referenced by msgpack request
// and response bodies of msgpack-capable operations.
func (r *parseRun) msgpackSchemasFromOperations() map[string]bool {
	roots := map[string]bool{}
	r.visitMsgpackOperations(func(opData map[string]any) {
		content := mapValue(mapValue(opData, "requestBody"), "content")
		for ct, cdAny := range content {
			if !msgpackContentTypes[ct] {
				continue
			}
			cd, _ := cdAny.(map[string]any)
			if ref, ok := mapValue(cd, "schema")["$ref"].(string); ok {
				roots[refName(ref)] = true
			}
		}
		for _, respAny := range mapValue(opData, "responses") {
			respData, ok := respAny.(map[string]any)
			if !ok {
				continue
			}
			for ct, cdAny := range mapValue(respData, "content") {
				if !msgpackContentTypes[ct] {
					continue
				}
				cd, _ := cdAny.(map[string]any)
				if ref, ok := mapValue(cd, "schema")["$ref"].(string); ok {
					roots[refName(ref)] = true
				}
			}
		}
	})
	return roots
}

// addHoistedMsgpackRoots adds the hoisted response schema of any msgpack
// operation whose response is itself delivered as msgpack.
func (r *parseRun) addHoistedMsgpackRoots(roots map[string]bool) {
	r.visitMsgpackOperations(func(opData map[string]any) {
		operationID, _ := opData["operationId"].(string)
		if operationID == "" || !r.msgpackOps[operationID] {
			return
		}
		if _, ok := r.rawSchemas[operationID]; !ok {
			return
		}
		for _, respAny := range mapValue(opData, "responses") {
			respData, ok := respAny.(map[string]any)
			if !ok {
				continue
			}
			for ct := range mapValue(respData, "content") {
				if msgpackContentTypes[ct] {
					roots[operationID] = true
					return
				}
			}
		}
	})
}

// visitMsgpackOperations calls fn for every operation that declares a
// msgpack content type.
func (r *parseRun) visitMsgpackOperations(fn func(opData map[string]any)) {
	for _, pathItemAny := range mapValue(r.doc, "paths") {
		pathItem, ok := pathItemAny.(map[string]any)
		if !ok {
			continue
		}
		for _, method := range httpMethods {
			opData := lookupMethod(pathItem, method)
			if opData == nil || !detectOperationMsgpack(opData) {
				continue
			}
			fn(opData)
		}
	}
}

// rawSchema reads a named raw schema, tolerating absent or malformed entries.
func rawSchema(rawSchemas map[string]any, name string) map[string]any {
	data, _ := rawSchemas[name].(map[string]any)
	if data == nil {
		return map[string]any{}
	}
	return data
}
