package schema

import "time"

// IntentRecordSchemaTextV1 describes a dispatched storefront intent.
// The payload is the JSON encoded intent.
const IntentRecordSchemaTextV1 = `{
	"type": "record",
	"namespace": "storefront.journal",
	"name": "intent_record",
	"fields" : [
		{"name": "id", "type": "string"},
		{"name": "session_id", "type": "string"},
		{"name": "name", "type": "string"},
		{"name": "occurred_at", "type": {"type": "long", "logicalType": "timestamp-millis"}},
		{"name": "payload", "type": "bytes"}
	]
}`

type IntentRecordV1 struct {
	ID         string    `avro:"id"`
	SessionID  string    `avro:"session_id"`
	Name       string    `avro:"name"`
	OccurredAt time.Time `avro:"occurred_at"`
	Payload    []byte    `avro:"payload"`
}
