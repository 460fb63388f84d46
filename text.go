package main

// Page copy that is not part of the content file.
var (
	NavItems = []string{"Home", "About", "Projects", "Contact"}

	ContactSuccess = `Thank you for your message! I'll get back to you soon.`

	ContactFailure = `Sorry, there was an error sending your message. Please try again later.`

	EmptyGallery = `No projects in this category yet.`

	PrivacyNotice = `This site records page views with a salted hash of your IP address,
	never the address itself. Requests sent with Do Not Track are not recorded.
	Records older than the retention window are deleted automatically.`
)
