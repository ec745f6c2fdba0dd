package xr

import "fmt"

// StructureType tags the payload carried by an EventDataBuffer.
// Extensions add tags the core does not know; unknown tags must not be
// treated as malformed.
type StructureType uint32

const (
	StructureTypeUnknown StructureType = iota
	StructureTypeEventDataEventsLost
	StructureTypeEventDataInstanceLossPending
	StructureTypeEventDataSessionStateChanged
	StructureTypeEventDataReferenceSpaceChangePending
	StructureTypeEventDataInteractionProfileChanged
	StructureTypeEventDataVisibilityMaskChangedKHR
	StructureTypeEventDataPerfSettingsEXT
	StructureTypeEventDataSpatialAnchorCreateCompleteFB
	StructureTypeEventDataUserPresenceChangedEXT
)

func (t StructureType) String() string {
	switch t {
	case StructureTypeEventDataEventsLost:
		return "XR_TYPE_EVENT_DATA_EVENTS_LOST"
	case StructureTypeEventDataInstanceLossPending:
		return "XR_TYPE_EVENT_DATA_INSTANCE_LOSS_PENDING"
	case StructureTypeEventDataSessionStateChanged:
		return "XR_TYPE_EVENT_DATA_SESSION_STATE_CHANGED"
	case StructureTypeEventDataReferenceSpaceChangePending:
		return "XR_TYPE_EVENT_DATA_REFERENCE_SPACE_CHANGE_PENDING"
	case StructureTypeEventDataInteractionProfileChanged:
		return "XR_TYPE_EVENT_DATA_INTERACTION_PROFILE_CHANGED"
	case StructureTypeEventDataVisibilityMaskChangedKHR:
		return "XR_TYPE_EVENT_DATA_VISIBILITY_MASK_CHANGED_KHR"
	case StructureTypeEventDataPerfSettingsEXT:
		return "XR_TYPE_EVENT_DATA_PERF_SETTINGS_EXT"
	case StructureTypeEventDataSpatialAnchorCreateCompleteFB:
		return "XR_TYPE_EVENT_DATA_SPATIAL_ANCHOR_CREATE_COMPLETE_FB"
	case StructureTypeEventDataUserPresenceChangedEXT:
		return "XR_TYPE_EVENT_DATA_USER_PRESENCE_CHANGED_EXT"
	default:
		return fmt.Sprintf("XR_TYPE_UNKNOWN(%d)", uint32(t))
	}
}

// EventDataBuffer is the single-event record filled by PollEvent. Type
// selects which payload field is meaningful; the others are zero. This
// stands in for the C union-through-header-cast layout.
type EventDataBuffer struct {
	Type StructureType

	EventsLost                *EventDataEventsLost
	InstanceLossPending       *EventDataInstanceLossPending
	SessionStateChanged       *EventDataSessionStateChanged
	ReferenceSpaceChangePending *EventDataReferenceSpaceChangePending
	InteractionProfileChanged *EventDataInteractionProfileChanged
	VisibilityMaskChanged     *EventDataVisibilityMaskChangedKHR
	PerfSettings              *EventDataPerfSettingsEXT
	SpatialAnchorCreateComplete *EventDataSpatialAnchorCreateCompleteFB
	UserPresenceChanged       *EventDataUserPresenceChangedEXT
}

// EventDataEventsLost reports dropped queue entries.
type EventDataEventsLost struct {
	LostEventCount uint32
}

// EventDataInstanceLossPending announces the instance will be lost at
// LossTime.
type EventDataInstanceLossPending struct {
	Instance Instance
	LossTime Time
}

// EventDataSessionStateChanged announces a session lifecycle
// transition.
type EventDataSessionStateChanged struct {
	Session Session
	State   SessionState
	Time    Time
}

// EventDataReferenceSpaceChangePending announces an upcoming origin
// recentering for a reference space type.
type EventDataReferenceSpaceChangePending struct {
	Session            Session
	ReferenceSpaceType ReferenceSpaceType
	ChangeTime         Time
	PoseValid          bool
	PoseInPreviousSpace Posef
}

// EventDataInteractionProfileChanged announces that current bindings
// may have changed.
type EventDataInteractionProfileChanged struct {
	Session Session
}

// EventDataVisibilityMaskChangedKHR announces a new visibility mask
// for a view.
type EventDataVisibilityMaskChangedKHR struct {
	Session               Session
	ViewConfigurationType ViewConfigurationType
	ViewIndex             uint32
}

// PerfSettingsLevel is the notification level of a perf settings event.
type PerfSettingsLevel uint32

const (
	PerfSettingsLevelNormal PerfSettingsLevel = iota
	PerfSettingsLevelWarning
	PerfSettingsLevelImpaired
)

// EventDataPerfSettingsEXT reports a performance notification.
type EventDataPerfSettingsEXT struct {
	Session   Session
	FromLevel PerfSettingsLevel
	ToLevel   PerfSettingsLevel
}

// EventDataSpatialAnchorCreateCompleteFB completes an async anchor
// creation request.
type EventDataSpatialAnchorCreateCompleteFB struct {
	RequestID uint64
	Result    Result
	Space     Space
}

// EventDataUserPresenceChangedEXT reports the user donning or doffing
// the device.
type EventDataUserPresenceChangedEXT struct {
	Session     Session
	IsUserPresent bool
}
