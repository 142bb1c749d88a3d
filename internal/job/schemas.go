package job

import (
	"math"

	"github.com/jobboardhq/jobs-api/internal/schema"
)

// salary is stored in an INTEGER column; bounding it here keeps a too-large
// value a 400 and keeps the float-to-int conversion from wrapping negative.
var maxSalary = schema.Float(math.MaxInt32)

var jobCreateSchema = schema.Schema{
	Fields: []schema.Field{
		{Name: "title", Type: schema.String, Required: true},
		{Name: "salary", Type: schema.Integer, Min: schema.Float(0), Max: maxSalary},
		{Name: "equity", Type: schema.Number, Min: schema.Float(0), Max: schema.Float(1)},
		{Name: "description", Type: schema.String},
		{Name: "companyHandle", Type: schema.String, Required: true},
	},
}

// the update schema declares mutable fields only, so an id or companyHandle
// in the payload fails as an undeclared field rather than being dropped
var jobUpdateSchema = schema.Schema{
	Fields: []schema.Field{
		{Name: "title", Type: schema.String},
		{Name: "salary", Type: schema.Integer, Min: schema.Float(0), Max: maxSalary},
		{Name: "equity", Type: schema.Number, Min: schema.Float(0), Max: schema.Float(1)},
		{Name: "description", Type: schema.String},
	},
}

var jobSearchSchema = schema.Schema{
	Fields: []schema.Field{
		{Name: "minSalary", Type: schema.Integer, Min: schema.Float(0), Max: maxSalary},
		{Name: "hasEquity", Type: schema.Boolean},
		{Name: "title", Type: schema.String},
	},
}

func ValidateCreate(payload map[string]interface{}) []string {
	return jobCreateSchema.Validate(payload)
}

func ValidateUpdate(payload map[string]interface{}) []string {
	if len(payload) == 0 {
		return []string{"update payload cannot be empty"}
	}
	return jobUpdateSchema.Validate(payload)
}

func ValidateSearch(payload map[string]interface{}) []string {
	return jobSearchSchema.Validate(payload)
}
