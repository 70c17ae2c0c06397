package api

// PostSummary is one entry of the public post index.
type PostSummary struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
}

// Post is a rendered post; HTML is produced by the markdown renderer and is not escaped.
type Post struct {
	Title string `json:"title"`
	HTML  string `json:"html"`
}

// AdminPost is the editable form of a post.
type AdminPost struct {
	Slug     string `json:"slug"`
	Title    string `json:"title"`
	Markdown string `json:"markdown"`
}

// FormErrors carries per-field validation messages for a rejected submission.
type FormErrors struct {
	Errors map[string]string `json:"errors"`
}

type Error struct {
	Error string `json:"error"`
}
