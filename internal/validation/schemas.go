package validation

import "strings"

var statusRule = Rule{
	Tag:     "oneof=active inactive on_leave",
	Message: "Status must be one of: " + strings.Join([]string{"active", "inactive", "on_leave"}, ", "),
}

var idParam = Field{
	Name:  "id",
	In:    InParams,
	Rules: []Rule{{Tag: "uuid", Message: "Valid UUID is required"}},
}

// CreateStaff validates POST /staff.
var CreateStaff = Schema{
	{Name: "firstName", In: InBody, Rules: []Rule{
		{Tag: "string", Message: "First name is required"},
		{Tag: "notblank", Message: "First name is required"},
	}},
	{Name: "lastName", In: InBody, Rules: []Rule{
		{Tag: "string", Message: "Last name is required"},
		{Tag: "notblank", Message: "Last name is required"},
	}},
	{Name: "email", In: InBody, Rules: []Rule{
		{Tag: "string", Message: "Valid email is required"},
		{Tag: "email", Message: "Valid email is required"},
	}},
	{Name: "position", In: InBody, Rules: []Rule{
		{Tag: "string", Message: "Position is required"},
		{Tag: "notblank", Message: "Position is required"},
	}},
	{Name: "department", In: InBody, Optional: true, Rules: []Rule{
		{Tag: "string", Message: "Department must be a string"},
	}},
}

// UpdateStaff validates PUT /staff/:id.
var UpdateStaff = Schema{
	idParam,
	{Name: "firstName", In: InBody, Optional: true, Rules: []Rule{
		{Tag: "string", Message: "First name must be a string"},
		{Tag: "notblank", Message: "First name cannot be empty"},
	}},
	{Name: "lastName", In: InBody, Optional: true, Rules: []Rule{
		{Tag: "string", Message: "Last name must be a string"},
		{Tag: "notblank", Message: "Last name cannot be empty"},
	}},
	{Name: "email", In: InBody, Optional: true, Rules: []Rule{
		{Tag: "string", Message: "Valid email is required"},
		{Tag: "email", Message: "Valid email is required"},
	}},
	{Name: "position", In: InBody, Optional: true, Rules: []Rule{
		{Tag: "string", Message: "Position must be a string"},
		{Tag: "notblank", Message: "Position cannot be empty"},
	}},
	{Name: "department", In: InBody, Optional: true, Rules: []Rule{
		{Tag: "string", Message: "Department must be a string"},
	}},
	{Name: "status", In: InBody, Optional: true, Rules: []Rule{
		{Tag: "string", Message: statusRule.Message},
		statusRule,
	}},
}

// GetStaff validates GET /staff/:id.
var GetStaff = Schema{idParam}

// DeleteStaff validates DELETE /staff/:id.
var DeleteStaff = Schema{idParam}

// ListStaff validates GET /staff.
var ListStaff = Schema{
	{Name: "page", In: InQuery, Kind: KindInt, Optional: true, Rules: []Rule{
		{Tag: "min=1", Message: "Page must be a positive integer"},
	}},
	{Name: "limit", In: InQuery, Kind: KindInt, Optional: true, Rules: []Rule{
		{Tag: "min=1,max=100", Message: "Limit must be an integer between 1 and 100"},
	}},
}
