package constants

const (
	AppName      = "storefront"
	AudienceUser = "storefront-user"

	// ImagePlaceholder is used for cart line snapshots of products
	// that have no image of their own.
	ImagePlaceholder = "https://via.placeholder.com/150"
)
