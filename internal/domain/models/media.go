package models

// Media is an externally stored asset referenced from a document (user
// avatar, community banner, course featured image). MediaID is the key in
// the media store; deleting the owning document is expected to reclaim the
// asset as a best-effort step.
type Media struct {
	MediaID  string `bson:"media_id" json:"media_id"`
	URL      string `bson:"url,omitempty" json:"url,omitempty"`
	MimeType string `bson:"mime_type,omitempty" json:"mime_type,omitempty"`
	Caption  string `bson:"caption,omitempty" json:"caption,omitempty"`
}
