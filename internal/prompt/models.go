package prompt

type SiteAnswerData struct {
	SiteName   string
	SiteURL    string
	Content    string
	ImageLines []string
	Question   string
}
