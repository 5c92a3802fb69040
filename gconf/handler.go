package gconf

import (
	"reflect"

	"github.com/tendermint/tendermint/libs/common"
	"github.com/zatoichi-labs/plasma"
	"github.com/zatoichi-labs/plasma/errors"
	"github.com/zatoichi-labs/plasma/x"
)

// OwnedConfig must have an Owner field. A configuration update
// message must be signed by an owner in order to be authorized to apply the
// change.
type OwnedConfig interface {
	Unmarshaler
	ValidMarshaler
	GetOwner() plasma.Address
}

// InitAdmin returns the address allowed to create a configuration that was
// not set in the genesis.
type InitAdmin func(plasma.ReadOnlyKVStore) (plasma.Address, error)

// UpdateConfigurationHandler applies a configuration patch. Zero value fields
// of the patch do not change the stored configuration.
type UpdateConfigurationHandler struct {
	pkg string
	// configType is the struct type behind the OwnedConfig pointer. A new
	// instance is loaded for every message.
	configType reflect.Type
	auth       x.Authenticator
	initAdmin  InitAdmin
}

var _ plasma.Handler = UpdateConfigurationHandler{}

// NewUpdateConfigurationHandler returns a handler of configuration patch
// messages for the pkg configuration. The config argument only declares
// the configuration type and must be a pointer to a struct.
//
// Every message must be signed by the current configuration owner. When no
// configuration exists yet, initAdmin (if not nil) names the only address
// allowed to create it.
func NewUpdateConfigurationHandler(
	pkg string,
	config OwnedConfig,
	auth x.Authenticator,
	initAdmin InitAdmin,
) UpdateConfigurationHandler {
	t := reflect.TypeOf(config)
	if t.Kind() != reflect.Ptr || t.Elem().Kind() != reflect.Struct {
		panic("configuration must be a pointer to a struct")
	}
	return UpdateConfigurationHandler{
		pkg:        pkg,
		configType: t.Elem(),
		auth:       auth,
		initAdmin:  initAdmin,
	}
}

// Check validates and applies the patch to the check store.
func (h UpdateConfigurationHandler) Check(ctx plasma.Context, store plasma.KVStore, tx plasma.Tx) (*plasma.CheckResult, error) {
	if _, err := h.apply(ctx, store, tx); err != nil {
		return nil, err
	}
	return &plasma.CheckResult{}, nil
}

// Deliver applies the patch and tags the result with the package name.
func (h UpdateConfigurationHandler) Deliver(ctx plasma.Context, store plasma.KVStore, tx plasma.Tx) (*plasma.DeliverResult, error) {
	conf, err := h.apply(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	return &plasma.DeliverResult{
		Tags: []common.KVPair{
			plasma.Tag("config_updated", []byte(h.pkg)),
			plasma.Tag("config_owner", []byte(conf.GetOwner().String())),
		},
	}, nil
}

func (h UpdateConfigurationHandler) newConfig() OwnedConfig {
	return reflect.New(h.configType).Interface().(OwnedConfig)
}

func (h UpdateConfigurationHandler) apply(ctx plasma.Context, store plasma.KVStore, tx plasma.Tx) (OwnedConfig, error) {
	conf := h.newConfig()
	if err := h.authorize(ctx, store, conf); err != nil {
		return nil, err
	}

	payload, err := patchPayload(tx)
	if err != nil {
		return nil, errors.Wrap(err, "cannot get message payload")
	}
	if err := patch(conf, payload); err != nil {
		return nil, errors.Wrap(err, "cannot patch config with message payload")
	}
	if err := Save(store, h.pkg, conf); err != nil {
		return nil, errors.Wrap(err, "cannot save updated config")
	}
	return conf, nil
}

// authorize loads the current configuration into conf and ensures the
// transaction is signed by its owner, or by the init admin if there is no
// configuration yet.
func (h UpdateConfigurationHandler) authorize(ctx plasma.Context, store plasma.KVStore, conf OwnedConfig) error {
	err := Load(store, h.pkg, conf)
	switch {
	case err == nil:
		owner := conf.GetOwner()
		if owner == nil {
			return errors.Wrap(errors.ErrUnauthorized, "owner signature required")
		}
		if !h.auth.HasAddress(ctx, owner) {
			return errors.Wrap(errors.ErrUnauthorized, "owner did not sign transaction")
		}
		return nil
	case errors.ErrNotFound.Is(err):
		if h.initAdmin == nil {
			return errors.Wrap(errors.ErrUnauthorized, "configuration does not exist and cannot be initialized")
		}
		admin, err := h.initAdmin(store)
		if err != nil {
			return errors.Wrap(err, "get init admin")
		}
		if !h.auth.HasAddress(ctx, admin) {
			return errors.Wrap(errors.ErrUnauthorized, "initialization admin signature required")
		}
		return nil
	default:
		return errors.Wrap(err, "load current configuration")
	}
}

// patch copies every non zero field of payload into config.
func patch(config, payload OwnedConfig) error {
	if reflect.TypeOf(payload) != reflect.TypeOf(config) {
		return errors.Wrapf(errors.ErrMsg, "patch of type %T cannot update %T", payload, config)
	}
	cval := reflect.ValueOf(config).Elem()
	pval := reflect.ValueOf(payload).Elem()
	for i := 0; i < cval.NumField(); i++ {
		if got := pval.Field(i); !isZero(got) {
			cval.Field(i).Set(got)
		}
	}
	return nil
}

func isZero(val reflect.Value) bool {
	zero := reflect.Zero(val.Type()).Interface()
	return reflect.DeepEqual(val.Interface(), zero)
}

// patchPayload expects the transaction message to have a "Patch" field
// holding the configuration patch.
func patchPayload(tx plasma.Tx) (OwnedConfig, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}

	pval := reflect.ValueOf(msg)
	if pval.Kind() != reflect.Ptr || pval.Elem().Kind() != reflect.Struct {
		return nil, errors.Wrapf(errors.ErrInput, "invalid message container value: %T", msg)
	}
	field := pval.Elem().FieldByName("Patch")
	if !field.IsValid() {
		return nil, errors.Wrapf(errors.ErrInput, "%T has no \"Patch\" field", msg)
	}
	if field.Kind() != reflect.Ptr || field.IsNil() {
		return nil, errors.Wrap(errors.ErrState, `"Patch" field is required`)
	}
	payload, ok := field.Interface().(OwnedConfig)
	if !ok {
		return nil, errors.Wrap(errors.ErrInput, `"Patch" field is of a wrong type`)
	}
	return payload, nil
}
