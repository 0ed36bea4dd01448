package router

// Intent names the handling path that produced a reply.
type Intent string

const (
	IntentTranslation Intent = "translation"
	IntentCapability  Intent = "capability"
	IntentWeather     Intent = "weather"
	IntentWhoIs       Intent = "who_is"
	IntentWikipedia   Intent = "wikipedia"
	IntentWebFallback Intent = "web_fallback"
	IntentGeneral     Intent = "general"
)

// Decision is the routing outcome for one message. The set of implementations
// is closed to this package.
type Decision interface {
	Intent() Intent
	sealed()
}

type Translation struct {
	Phrase string
	Target string
}

type Capability struct{}

type Weather struct {
	City string
}

type WhoIs struct {
	Name string
}

type WikipediaFactual struct {
	Query string
}

type WebFallback struct {
	Query string
}

type GeneralGeneration struct {
	Query string
}

func (Translation) Intent() Intent       { return IntentTranslation }
func (Capability) Intent() Intent        { return IntentCapability }
func (Weather) Intent() Intent           { return IntentWeather }
func (WhoIs) Intent() Intent             { return IntentWhoIs }
func (WikipediaFactual) Intent() Intent  { return IntentWikipedia }
func (WebFallback) Intent() Intent       { return IntentWebFallback }
func (GeneralGeneration) Intent() Intent { return IntentGeneral }

func (Translation) sealed()       {}
func (Capability) sealed()        {}
func (Weather) sealed()           {}
func (WhoIs) sealed()             {}
func (WikipediaFactual) sealed()  {}
func (WebFallback) sealed()       {}
func (GeneralGeneration) sealed() {}

// Reply is the text returned to the user and the decision that produced it.
type Reply struct {
	Decision Decision
	Text     string
}

func (r Reply) Intent() Intent {
	if r.Decision == nil {
		return IntentGeneral
	}
	return r.Decision.Intent()
}
