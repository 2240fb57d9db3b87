package enums

const (
	EventPostCreated = "post.created"
)
