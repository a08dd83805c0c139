// ABOUTME: Screen registry: one declarative configuration per collection.
// ABOUTME: Columns, form fields, related lookups, and enrichment transforms.

package console

import (
	"context"

	"github.com/fernando-bedoya/adminconsole/internal/resource"
	"github.com/fernando-bedoya/adminconsole/internal/schema"
)

// Screens builds the full screen set in navigation order.
func Screens() []*Screen {
	return []*Screen{
		usersScreen(),
		rolesScreen(),
		permissionsScreen(),
		userRolesScreen(),
		rolePermissionsScreenConfig(),
		sessionsScreen(),
		passwordsScreen(),
		securityQuestionsScreen(),
		answersScreen(),
		devicesScreen(),
		digitalSignaturesScreen(),
		activityScreen(),
	}
}

func activityScreen() *Screen {
	return &Screen{
		Slug:     "activity",
		Title:    "Activity",
		Endpoint: "request-logs",
		Columns: []schema.Column{
			{Key: "timestamp", Label: "When"},
			{Key: "resource", Label: "Resource"},
			{Key: "method", Label: "Method"},
			{Key: "path", Label: "Path"},
			{Key: "status_code", Label: "Status"},
			{Key: "duration_ms", Label: "ms"},
			{Key: "user_id", Label: "User"},
		},
		NoCreate: true,
		NoEdit:   true,
		NoDelete: true,
	}
}

func usersScreen() *Screen {
	return &Screen{
		Slug:     "users",
		Title:    "Users",
		Endpoint: "users",
		Columns: []schema.Column{
			{Key: "id", Label: "ID"},
			{Key: "name", Label: "Name"},
			{Key: "email", Label: "Email"},
			{Key: "created_at", Label: "Created"},
		},
		Fields: []schema.Field{
			{Name: "name", Label: "Name", Type: schema.TypeText, Required: true},
			{Name: "email", Label: "Email", Type: schema.TypeEmail, Required: true},
			{Name: "password", Label: "Password", Type: schema.TypePassword, Required: true,
				HelpText: "Only set on creation. Existing passwords change via the account screens."},
		},
		// Passwords never change through the edit form; only the identity
		// flows may touch them.
		EditFields: []schema.Field{
			{Name: "name", Label: "Name", Type: schema.TypeText, Required: true},
			{Name: "email", Label: "Email", Type: schema.TypeEmail, Required: true},
		},
	}
}

func rolesScreen() *Screen {
	return &Screen{
		Slug:     "roles",
		Title:    "Roles",
		Endpoint: "roles",
		Columns: []schema.Column{
			{Key: "id", Label: "ID"},
			{Key: "name", Label: "Name"},
			{Key: "description", Label: "Description"},
		},
		Fields: []schema.Field{
			{Name: "name", Label: "Name", Type: schema.TypeText, Required: true},
			{Name: "description", Label: "Description", Type: schema.TypeTextarea},
		},
		CustomActions: []CustomAction{
			{
				Action:   schema.Action{Name: "permissions", Label: "Permissions"},
				Redirect: func(id string) string { return BasePath + "/roles/" + id + "/permissions" },
			},
			{
				Action:   schema.Action{Name: "users", Label: "Users"},
				Redirect: func(id string) string { return BasePath + "/roles/" + id + "/users" },
			},
		},
	}
}

func permissionsScreen() *Screen {
	return &Screen{
		Slug:     "permissions",
		Title:    "Permissions",
		Endpoint: "permissions",
		Columns: []schema.Column{
			{Key: "id", Label: "ID"},
			{Key: "url", Label: "URL"},
			{Key: "method", Label: "Method"},
		},
		Fields: []schema.Field{
			{Name: "url", Label: "URL", Type: schema.TypeText, Required: true, Placeholder: "/api/users"},
			{Name: "method", Label: "Method", Type: schema.TypeSelect, Required: true, Options: []schema.Option{
				{Value: "GET", Label: "GET"},
				{Value: "POST", Label: "POST"},
				{Value: "PUT", Label: "PUT"},
				{Value: "DELETE", Label: "DELETE"},
			}},
		},
	}
}

func userRolesScreen() *Screen {
	return &Screen{
		Slug:     "user-roles",
		Title:    "User Roles",
		Endpoint: "user-roles",
		Columns: []schema.Column{
			{Key: "id", Label: "ID"},
			{Key: "user_name", Label: "User"},
			{Key: "role_name", Label: "Role"},
			{Key: "start_at", Label: "Assigned"},
			{Key: "end_at", Label: "Ends"},
		},
		Fields: []schema.Field{
			{Name: "user_id", Label: "User", Type: schema.TypeSelect, Required: true},
			{Name: "role_id", Label: "Role", Type: schema.TypeSelect, Required: true},
		},
		Related: []schema.RelatedEndpoint{
			{Name: "users", Endpoint: "users", LabelField: "name"},
			{Name: "roles", Endpoint: "roles", LabelField: "name"},
		},
		OptionSources: map[string]string{"user_id": "users", "role_id": "roles"},
		Transform: func(rows []schema.Row, related map[string][]schema.Row) []schema.Row {
			for _, row := range rows {
				row["user_name"] = relatedLabel(related["users"], row["user_id"], "name")
				row["role_name"] = relatedLabel(related["roles"], row["role_id"], "name")
			}
			return rows
		},
		NoEdit: true,
	}
}

func rolePermissionsScreenConfig() *Screen {
	return &Screen{
		Slug:     "role-permissions",
		Title:    "Role Permissions",
		Endpoint: "role-permissions",
		Columns: []schema.Column{
			{Key: "id", Label: "ID"},
			{Key: "role_name", Label: "Role"},
			{Key: "permission_url", Label: "Permission"},
			{Key: "permission_method", Label: "Method"},
		},
		Fields: []schema.Field{
			{Name: "role_id", Label: "Role", Type: schema.TypeSelect, Required: true},
			{Name: "permission_id", Label: "Permission", Type: schema.TypeSelect, Required: true},
		},
		Related: []schema.RelatedEndpoint{
			{Name: "roles", Endpoint: "roles", LabelField: "name"},
			{Name: "permissions", Endpoint: "permissions", LabelField: "url"},
		},
		OptionSources: map[string]string{"role_id": "roles", "permission_id": "permissions"},
		Transform: func(rows []schema.Row, related map[string][]schema.Row) []schema.Row {
			for _, row := range rows {
				row["role_name"] = relatedLabel(related["roles"], row["role_id"], "name")
				row["permission_url"] = relatedLabel(related["permissions"], row["permission_id"], "url")
				row["permission_method"] = relatedLabel(related["permissions"], row["permission_id"], "method")
			}
			return rows
		},
		NoEdit: true,
	}
}

func sessionsScreen() *Screen {
	return &Screen{
		Slug:     "sessions",
		Title:    "Sessions",
		Endpoint: "sessions",
		Columns: []schema.Column{
			{Key: "id", Label: "ID"},
			{Key: "user_name", Label: "User"},
			{Key: "expires_at", Label: "Expires"},
			{Key: "state", Label: "State"},
		},
		Fields: []schema.Field{
			{Name: "user_id", Label: "User", Type: schema.TypeSelect, Required: true},
			{Name: "token", Label: "Token", Type: schema.TypeText,
				HelpText: "Leave blank to issue a placeholder token."},
		},
		Related: []schema.RelatedEndpoint{
			{Name: "users", Endpoint: "users", LabelField: "name"},
		},
		OptionSources: map[string]string{"user_id": "users"},
		Transform: func(rows []schema.Row, related map[string][]schema.Row) []schema.Row {
			for _, row := range rows {
				row["user_name"] = relatedLabel(related["users"], row["user_id"], "name")
			}
			return rows
		},
		NoEdit:       true,
		NestedField:  "user_id",
		NestedParent: "user",
		CustomActions: []CustomAction{
			{
				Action: schema.Action{Name: "revoke", Label: "Revoke", Method: "PUT", Confirm: true, Variant: "danger"},
				Handle: func(ctx context.Context, c *resource.Client, id string) error {
					_, err := c.Update(ctx, "sessions", id, schema.Row{"state": "revoked"})
					return err
				},
			},
		},
		ActionVisible: func(action string, row schema.Row) bool {
			if action == "revoke" {
				state, _ := row["state"].(string)
				return state == "active"
			}
			return row["id"] != nil
		},
	}
}

func passwordsScreen() *Screen {
	return &Screen{
		Slug:     "passwords",
		Title:    "Password History",
		Endpoint: "passwords",
		Columns: []schema.Column{
			{Key: "id", Label: "ID"},
			{Key: "user_name", Label: "User"},
			{Key: "start_at", Label: "From"},
			{Key: "end_at", Label: "Until"},
		},
		Related: []schema.RelatedEndpoint{
			{Name: "users", Endpoint: "users", LabelField: "name"},
		},
		Transform: func(rows []schema.Row, related map[string][]schema.Row) []schema.Row {
			for _, row := range rows {
				row["user_name"] = relatedLabel(related["users"], row["user_id"], "name")
			}
			return rows
		},
		// History rows are written by the identity service only.
		NoCreate: true,
		NoEdit:   true,
	}
}

func securityQuestionsScreen() *Screen {
	return &Screen{
		Slug:     "security-questions",
		Title:    "Security Questions",
		Endpoint: "security-questions",
		Columns: []schema.Column{
			{Key: "id", Label: "ID"},
			{Key: "name", Label: "Question"},
			{Key: "description", Label: "Description"},
		},
		Fields: []schema.Field{
			{Name: "name", Label: "Question", Type: schema.TypeText, Required: true},
			{Name: "description", Label: "Description", Type: schema.TypeTextarea},
		},
	}
}

func answersScreen() *Screen {
	return &Screen{
		Slug:     "answers",
		Title:    "Security Answers",
		Endpoint: "answers",
		Columns: []schema.Column{
			{Key: "id", Label: "ID"},
			{Key: "user_name", Label: "User"},
			{Key: "question_name", Label: "Question"},
			{Key: "content", Label: "Answer"},
		},
		Fields: []schema.Field{
			{Name: "user_id", Label: "User", Type: schema.TypeSelect, Required: true},
			{Name: "security_question_id", Label: "Question", Type: schema.TypeSelect, Required: true},
			{Name: "content", Label: "Answer", Type: schema.TypeText, Required: true},
		},
		Related: []schema.RelatedEndpoint{
			{Name: "users", Endpoint: "users", LabelField: "name"},
			{Name: "questions", Endpoint: "security-questions", LabelField: "name"},
		},
		OptionSources: map[string]string{"user_id": "users", "security_question_id": "questions"},
		Transform: func(rows []schema.Row, related map[string][]schema.Row) []schema.Row {
			for _, row := range rows {
				row["user_name"] = relatedLabel(related["users"], row["user_id"], "name")
				row["question_name"] = relatedLabel(related["questions"], row["security_question_id"], "name")
			}
			return rows
		},
	}
}

func devicesScreen() *Screen {
	return &Screen{
		Slug:     "devices",
		Title:    "Devices",
		Endpoint: "devices",
		Columns: []schema.Column{
			{Key: "id", Label: "ID"},
			{Key: "user_name", Label: "User"},
			{Key: "name", Label: "Device"},
			{Key: "ip", Label: "IP"},
			{Key: "operating_system", Label: "OS"},
		},
		Fields: []schema.Field{
			{Name: "user_id", Label: "User", Type: schema.TypeSelect, Required: true},
			{Name: "name", Label: "Device name", Type: schema.TypeText, Required: true},
			{Name: "ip", Label: "IP address", Type: schema.TypeText, Placeholder: "192.168.0.10"},
			{Name: "operating_system", Label: "Operating system", Type: schema.TypeText},
		},
		Related: []schema.RelatedEndpoint{
			{Name: "users", Endpoint: "users", LabelField: "name"},
		},
		OptionSources: map[string]string{"user_id": "users"},
		Transform: func(rows []schema.Row, related map[string][]schema.Row) []schema.Row {
			for _, row := range rows {
				row["user_name"] = relatedLabel(related["users"], row["user_id"], "name")
			}
			return rows
		},
	}
}

func digitalSignaturesScreen() *Screen {
	return &Screen{
		Slug:     "digital-signatures",
		Title:    "Digital Signatures",
		Endpoint: "digital-signatures",
		Columns: []schema.Column{
			{Key: "id", Label: "ID"},
			{Key: "user_name", Label: "User"},
			{Key: "image_url", Label: "Image"},
		},
		Fields: []schema.Field{
			{Name: "user_id", Label: "User", Type: schema.TypeSelect, Required: true},
			{Name: "image_url", Label: "Image URL", Type: schema.TypeText, Required: true, Placeholder: "https://"},
		},
		Related: []schema.RelatedEndpoint{
			{Name: "users", Endpoint: "users", LabelField: "name"},
		},
		OptionSources: map[string]string{"user_id": "users"},
		Transform: func(rows []schema.Row, related map[string][]schema.Row) []schema.Row {
			for _, row := range rows {
				row["user_name"] = relatedLabel(related["users"], row["user_id"], "name")
			}
			return rows
		},
	}
}
