package mirror

const (
	// collection names
	usersNode    string = "users"
	productsNode string = "products"

	// operation labels
	opPush   string = "push"
	opDelete string = "delete"

	resultOk     string = "ok"
	resultFailed string = "failed"
)
