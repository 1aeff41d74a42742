// Package appsync is the Lambda direct-resolver boundary. AppSync invokes
// one Lambda for every GraphQL field; the event carries the field name, the
// arguments, and the verified caller identity.
package appsync

import "encoding/json"

// Identity is the Cognito identity AppSync attaches after validating the
// caller's token. Claims carry the raw token claims, including the group
// membership admin checks read.
type Identity struct {
	Sub      string                 `json:"sub"`
	Username string                 `json:"username"`
	Claims   map[string]interface{} `json:"claims"`
	Groups   []string               `json:"groups"`
}

// Info identifies the resolved GraphQL field.
type Info struct {
	FieldName      string `json:"fieldName"`
	ParentTypeName string `json:"parentTypeName"`
}

// Event is the direct-resolver invocation payload.
type Event struct {
	Info      Info            `json:"info"`
	Arguments json.RawMessage `json:"arguments"`
	Identity  *Identity       `json:"identity"`
}
