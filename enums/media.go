package enums

type MediaType string

const (
	MediaTypeImage MediaType = "IMAGE"
	MediaTypeVideo MediaType = "VIDEO"
)

const (
	MaxImagesPerPost = 3
	MaxVideosPerPost = 1
)
