package domain

// Resource names shared by the backend client, the admin controller and the
// HTTP routes.
const (
	ResourceJobs       = "jobs"
	ResourceNews       = "news"
	ResourceCases      = "cases"
	ResourceTechniques = "techniques"
	ResourceProducts   = "products"
)

// Resources lists the managed collections in dashboard tab order.
var Resources = []string{
	ResourceJobs,
	ResourceNews,
	ResourceCases,
	ResourceTechniques,
	ResourceProducts,
}

// NewsImageLimit caps the number of images attached to a news item by the editor.
const NewsImageLimit = 3

// Unlimited marks an array field without an editor cap.
const Unlimited = 0

func emptyIfNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
