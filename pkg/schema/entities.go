package schema

// Extraction is the structured-outputs shape for entity extraction, used when
// the oracle backend honors JSON response formats. The line-oriented parser
// remains the fallback for backends that ignore them.
type Extraction struct {
	Entities []Entity `json:"entities" jsonschema_description:"Entities extracted from the narrative, in order of first mention"`
}

type Entity struct {
	Text string `json:"text" jsonschema_description:"Literal entity text exactly as it appears in the narrative"`
	Role string `json:"role,omitempty" jsonschema_description:"Role label such as Witness, Suspect, Officer, or Location; omit when unknown"`
}
