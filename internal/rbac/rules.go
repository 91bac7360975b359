package rbac

// Simple default policy. Expand as needed.
var RolePermissions = map[string][]string{
	"viewer": {
		"run:view",
		"report:view",
	},
	"coordinator": {
		"run:create",
		"run:view",
		"report:view",
		"roster:import",
	},
	"admin": {
		"*", // everything
	},
}
