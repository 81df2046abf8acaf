package wire

// Tag identifies the type of one MCS wire message. The numbering is
// fixed by the protocol and shared by every independent
// implementation of it (cross-checked against the retrieval pack's
// crow-misia/go-push-receiver and palbooo/push-receiver-go tag
// tables).
type Tag byte

const (
	TagHeartbeatPing       Tag = 0
	TagHeartbeatAck        Tag = 1
	TagLoginRequest        Tag = 2
	TagLoginResponse       Tag = 3
	TagClose               Tag = 4
	TagMessageStanza       Tag = 5
	TagPresenceStanza      Tag = 6
	TagIqStanza            Tag = 7
	TagDataMessageStanza   Tag = 8
	TagBatchPresenceStanza Tag = 9
	TagStreamErrorStanza   Tag = 10
	TagHTTPRequest         Tag = 11
	TagHTTPResponse        Tag = 12
	TagBindAccountRequest  Tag = 13
	TagBindAccountResponse Tag = 14
	TagTalkMetadata        Tag = 15
)

// knownTags is the fixed tag table. Tags acted on by this client are
// 0, 1, 2, 3, 4, 8; the rest are tolerated on read (body skipped) but
// never produced on write.
var knownTags = map[Tag]struct{}{
	TagHeartbeatPing:       {},
	TagHeartbeatAck:        {},
	TagLoginRequest:        {},
	TagLoginResponse:       {},
	TagClose:               {},
	TagMessageStanza:       {},
	TagPresenceStanza:      {},
	TagIqStanza:            {},
	TagDataMessageStanza:   {},
	TagBatchPresenceStanza: {},
	TagStreamErrorStanza:   {},
	TagHTTPRequest:         {},
	TagHTTPResponse:        {},
	TagBindAccountRequest:  {},
	TagBindAccountResponse: {},
	TagTalkMetadata:        {},
}

// actionableTags is the subset the stream loop dispatches on; all
// other known (and unknown) tags are counted toward the stream id and
// otherwise ignored.
var actionableTags = map[Tag]struct{}{
	TagHeartbeatPing:     {},
	TagHeartbeatAck:      {},
	TagLoginRequest:      {},
	TagLoginResponse:     {},
	TagClose:             {},
	TagDataMessageStanza: {},
}

// IsKnown reports whether tag appears in the fixed MCS tag table.
func IsKnown(tag Tag) bool {
	_, ok := knownTags[tag]
	return ok
}

// IsActionable reports whether the stream loop has explicit handling
// for tag (spec §4.3: tags 0,1,2,3,4,8).
func IsActionable(tag Tag) bool {
	_, ok := actionableTags[tag]
	return ok
}
