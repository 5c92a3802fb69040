package exit

import (
	"fmt"

	"github.com/gogo/protobuf/proto"
	"github.com/zatoichi-labs/plasma"
	"github.com/zatoichi-labs/plasma/codec"
	"github.com/zatoichi-labs/plasma/errors"
	"github.com/zatoichi-labs/plasma/orm"
	"github.com/zatoichi-labs/plasma/x/proof"
)

// ClaimState is the lifecycle state of an exit claim.
type ClaimState int32

// Claim states. Only Pending claims can change.
const (
	Pending    ClaimState = 1
	Challenged ClaimState = 2
	Finalized  ClaimState = 3
	Cancelled  ClaimState = 4
)

func (s ClaimState) String() string {
	switch s {
	case Pending:
		return "pending"
	case Challenged:
		return "challenged"
	case Finalized:
		return "finalized"
	case Cancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// ExitClaim is a request to withdraw a token.
type ExitClaim struct {
	ID       uint64         `protobuf:"varint,1,opt,name=id,proto3" json:"id"`
	TokenID  uint64         `protobuf:"varint,2,opt,name=token_id,proto3" json:"token_id"`
	Claimant plasma.Address `protobuf:"bytes,3,opt,name=claimant,proto3" json:"claimant"`
	// ExitableAt is the height of the last transfer of the history, or the
	// deposit height if the token was never transferred.
	ExitableAt         int64            `protobuf:"varint,4,opt,name=exitable_at,proto3" json:"exitable_at"`
	RequestHeight      int64            `protobuf:"varint,5,opt,name=request_height,proto3" json:"request_height"`
	ChallengePeriodEnd int64            `protobuf:"varint,6,opt,name=challenge_period_end,proto3" json:"challenge_period_end"`
	Bond               uint64           `protobuf:"varint,7,opt,name=bond,proto3" json:"bond"`
	State              ClaimState       `protobuf:"varint,8,opt,name=state,proto3" json:"state"`
	History            []proof.Transfer `protobuf:"bytes,9,rep,name=history,proto3" json:"history"`
}

var _ orm.Model = (*ExitClaim)(nil)

// exitClaimProto is ExitClaim without its methods.
type exitClaimProto ExitClaim

func (m *exitClaimProto) Reset()         { *m = exitClaimProto{} }
func (m *exitClaimProto) String() string { return proto.CompactTextString(m) }
func (*exitClaimProto) ProtoMessage()    {}

// Marshal uses the protobuf encoding.
func (c *ExitClaim) Marshal() ([]byte, error) {
	return codec.MarshalProto((*exitClaimProto)(c))
}

// Unmarshal uses the protobuf encoding.
func (c *ExitClaim) Unmarshal(raw []byte) error {
	return codec.UnmarshalProto(raw, (*exitClaimProto)(c))
}

// Validate checks all fields.
func (c *ExitClaim) Validate() error {
	if c.ID == 0 {
		return errors.Wrap(errors.ErrInput, "id")
	}
	if c.TokenID == 0 {
		return errors.Wrap(errors.ErrInput, "token id")
	}
	if err := c.Claimant.Validate(); err != nil {
		return errors.Wrap(err, "claimant")
	}
	if c.ExitableAt < 0 || c.ExitableAt > c.RequestHeight {
		return errors.Wrapf(errors.ErrInput, "exitable at %d, requested at %d", c.ExitableAt, c.RequestHeight)
	}
	if c.ChallengePeriodEnd <= c.RequestHeight {
		return errors.Wrapf(errors.ErrInput, "challenge period end %d", c.ChallengePeriodEnd)
	}
	if c.State < Pending || c.State > Cancelled {
		return errors.Wrapf(errors.ErrState, "unknown state %d", int32(c.State))
	}
	return nil
}

func claimKey(id uint64) []byte {
	return orm.EncodeSequence(int64(id))
}

// activeClaim points from a token to its pending claim.
type activeClaim struct {
	ClaimID uint64 `protobuf:"varint,1,opt,name=claim_id,proto3" json:"claim_id"`
}

type activeClaimProto activeClaim

func (m *activeClaimProto) Reset()         { *m = activeClaimProto{} }
func (m *activeClaimProto) String() string { return proto.CompactTextString(m) }
func (*activeClaimProto) ProtoMessage()    {}

func (a *activeClaim) Marshal() ([]byte, error) {
	return codec.MarshalProto((*activeClaimProto)(a))
}

func (a *activeClaim) Unmarshal(raw []byte) error {
	return codec.UnmarshalProto(raw, (*activeClaimProto)(a))
}

func (a *activeClaim) Validate() error {
	if a.ClaimID == 0 {
		return errors.Wrap(errors.ErrInput, "claim id")
	}
	return nil
}

// DisproofKind tells how a challenge proves a claim wrong.
type DisproofKind int32

const (
	// DisproofSpend is a transfer signed by the claimant after the last
	// transfer of the claimed history. The claimant no longer owns the
	// token.
	DisproofSpend DisproofKind = 1
	// DisproofDoubleSpend is a transfer signed by the sender of a history
	// step, committed before that step and sent to someone else. The
	// sender had already spent the token, so the step is invalid.
	DisproofDoubleSpend DisproofKind = 2
)

func (k DisproofKind) String() string {
	switch k {
	case DisproofSpend:
		return "spend"
	case DisproofDoubleSpend:
		return "double_spend"
	default:
		return fmt.Sprintf("kind(%d)", int32(k))
	}
}

// Disproof is the evidence presented by a challenger.
type Disproof struct {
	Kind DisproofKind `json:"kind"`
	// Step is the index of the history transfer that is double spent. It is
	// ignored for DisproofSpend.
	Step     int32          `json:"step"`
	Transfer proof.Transfer `json:"transfer"`
}

// Validate checks the kind and the shape of the transfer.
func (d *Disproof) Validate() error {
	switch d.Kind {
	case DisproofSpend:
	case DisproofDoubleSpend:
		if d.Step < 0 {
			return errors.Wrapf(errors.ErrInput, "step %d", d.Step)
		}
	default:
		return errors.Wrapf(errors.ErrInput, "unknown disproof kind %d", int32(d.Kind))
	}
	return nil
}

// ChallengeRecord is the audit entry of a successful challenge.
type ChallengeRecord struct {
	ClaimID    uint64         `protobuf:"varint,1,opt,name=claim_id,proto3" json:"claim_id"`
	TokenID    uint64         `protobuf:"varint,2,opt,name=token_id,proto3" json:"token_id"`
	Challenger plasma.Address `protobuf:"bytes,3,opt,name=challenger,proto3" json:"challenger"`
	Kind       DisproofKind   `protobuf:"varint,4,opt,name=kind,proto3" json:"kind"`
	Proof      proof.Transfer `protobuf:"bytes,5,opt,name=proof,proto3" json:"proof"`
	// Reward is the part of the bond paid to the challenger, Burned the
	// rest of it.
	Reward uint64 `protobuf:"varint,6,opt,name=reward,proto3" json:"reward"`
	Burned uint64 `protobuf:"varint,7,opt,name=burned,proto3" json:"burned"`
	Height int64  `protobuf:"varint,8,opt,name=height,proto3" json:"height"`
}

var _ orm.Model = (*ChallengeRecord)(nil)

// challengeRecordProto is ChallengeRecord without its methods.
type challengeRecordProto ChallengeRecord

func (m *challengeRecordProto) Reset()         { *m = challengeRecordProto{} }
func (m *challengeRecordProto) String() string { return proto.CompactTextString(m) }
func (*challengeRecordProto) ProtoMessage()    {}

// Marshal uses the protobuf encoding.
func (r *ChallengeRecord) Marshal() ([]byte, error) {
	return codec.MarshalProto((*challengeRecordProto)(r))
}

// Unmarshal uses the protobuf encoding.
func (r *ChallengeRecord) Unmarshal(raw []byte) error {
	return codec.UnmarshalProto(raw, (*challengeRecordProto)(r))
}

// Validate checks the references.
func (r *ChallengeRecord) Validate() error {
	if r.ClaimID == 0 || r.TokenID == 0 {
		return errors.Wrap(errors.ErrInput, "claim reference")
	}
	if err := r.Challenger.Validate(); err != nil {
		return errors.Wrap(err, "challenger")
	}
	return nil
}
