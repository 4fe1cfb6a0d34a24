package rbac

// Simple default policy. Expand as needed.
var RolePermissions = map[string][]string{
	"student": {
		"grade:view-own",
	},
	"instructor": {
		"roster:view",
		"roster:export",
		"grade:view-all",
		"grade:edit",
	},
	"admin": {
		"*", // everything
	},
}
