package entity

import (
	"fmt"
	"strings"
)

// ContextKind tags the relationship type backing a conversation.
type ContextKind string

const (
	KindNone       ContextKind = "none"
	KindQuotation  ContextKind = "quotation"
	KindConnection ContextKind = "connection"
	KindAdInquiry  ContextKind = "advertisement"
	KindDirect     ContextKind = "direct"
)

const (
	connToken   = "conn"
	adToken     = "ad"
	directToken = "direct"
)

// ConversationContext is the tagged form of the relationship context.
// The string encoding lives only in ConversationID and ParseConversationID;
// everything above this package works with the tagged value.
type ConversationContext struct {
	Kind  ContextKind
	RefID string
}

func NoContext() ConversationContext {
	return ConversationContext{Kind: KindNone}
}

func QuotationContext(quotationID string) ConversationContext {
	return ConversationContext{Kind: KindQuotation, RefID: quotationID}
}

func ConnectionContext(connectionID string) ConversationContext {
	return ConversationContext{Kind: KindConnection, RefID: connectionID}
}

func AdInquiryContext(advertisementID string) ConversationContext {
	return ConversationContext{Kind: KindAdInquiry, RefID: advertisementID}
}

func DirectContext() ConversationContext {
	return ConversationContext{Kind: KindDirect}
}

// ConversationID derives the canonical identifier for a two-party
// conversation. The two user IDs are ordered lexicographically so the
// result does not depend on who initiates. User IDs must not contain
// the underscore delimiter; that is an invariant of the ID space, not
// validated here.
func ConversationID(userA, userB string, ctx ConversationContext) string {
	lo, hi := userA, userB
	if hi < lo {
		lo, hi = hi, lo
	}

	switch ctx.Kind {
	case KindQuotation:
		return fmt.Sprintf("%s_%s_%s", lo, hi, ctx.RefID)
	case KindConnection:
		return fmt.Sprintf("%s_%s_%s_%s", lo, hi, connToken, ctx.RefID)
	case KindAdInquiry:
		return fmt.Sprintf("%s_%s_%s_%s", lo, hi, adToken, ctx.RefID)
	case KindDirect:
		return fmt.Sprintf("%s_%s_%s", lo, hi, directToken)
	default:
		return fmt.Sprintf("%s_%s", lo, hi)
	}
}

// ParsedConversation is the decoded form of a conversation identifier.
// UserA/UserB keep the lexicographic order embedded in the identifier.
type ParsedConversation struct {
	UserA   string
	UserB   string
	Context ConversationContext
}

// ParseConversationID decodes an identifier back into its participants
// and context. Token precedence: "conn" beats "ad"/"direct", and any
// other third segment is read as a quotation ID (the fallback kind).
func ParseConversationID(id string) (*ParsedConversation, error) {
	parts := strings.Split(id, "_")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return nil, fmt.Errorf("malformed conversation id %q", id)
	}
	// A conversation has two distinct parties; a self-pair identifier is
	// never derived and is rejected on decode.
	if parts[0] == parts[1] {
		return nil, fmt.Errorf("malformed conversation id %q", id)
	}

	parsed := &ParsedConversation{UserA: parts[0], UserB: parts[1]}

	switch {
	case len(parts) == 2:
		parsed.Context = NoContext()
	case parts[2] == connToken:
		if len(parts) != 4 || parts[3] == "" {
			return nil, fmt.Errorf("malformed connection conversation id %q", id)
		}
		parsed.Context = ConnectionContext(parts[3])
	case parts[2] == adToken:
		if len(parts) != 4 || parts[3] == "" {
			return nil, fmt.Errorf("malformed ad inquiry conversation id %q", id)
		}
		parsed.Context = AdInquiryContext(parts[3])
	case parts[2] == directToken:
		if len(parts) != 3 {
			return nil, fmt.Errorf("malformed direct conversation id %q", id)
		}
		parsed.Context = DirectContext()
	default:
		if len(parts) != 3 {
			return nil, fmt.Errorf("malformed quotation conversation id %q", id)
		}
		parsed.Context = QuotationContext(parts[2])
	}

	return parsed, nil
}

// HasParticipant reports whether uid is one of the two embedded users.
func (p *ParsedConversation) HasParticipant(uid string) bool {
	return uid == p.UserA || uid == p.UserB
}

// OtherParticipant returns the embedded user that is not uid. Callers
// must check HasParticipant first.
func (p *ParsedConversation) OtherParticipant(uid string) string {
	if uid == p.UserA {
		return p.UserB
	}
	return p.UserA
}
