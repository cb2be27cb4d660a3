package modes

// dispatch turns a parsed Envelope into a concrete Variant, consulting
// and updating the per-aircraft state that the ADS-B families need
// (version, NIC supplements, geo-minus-baro) — the stateful half of the
// decoder, §4.5. store may be nil, in which case every ADS-B variant is
// decoded against a zero StateSnapshot (equivalent to "unknown
// transponder, assume V0").
func dispatch(env Envelope, tsMillis int64, store *aircraftStore) (Variant, error) {
	switch env.DF {
	case 0:
		return NewShortACASMsg(env)
	case 4:
		return NewAltitudeReplyMsg(env)
	case 5:
		return NewIdentifyReplyMsg(env)
	case 11:
		return NewAllCallReplyMsg(env)
	case 16:
		return NewLongACASMsg(env)
	case 20:
		return NewCommBAltitudeReplyMsg(env)
	case 21:
		return NewCommBIdentifyReplyMsg(env)
	}
	if env.DF >= 24 {
		return NewCommDELMMsg(env)
	}

	if env.DF == 17 || env.DF == 18 {
		// DF18 with CF >= 4 carries non-ADS-B TIS-B/fine formats this
		// decoder does not specialize; surface it as the raw envelope
		// rather than guessing at ME semantics that don't apply.
		if env.DF == 18 && env.FirstField >= 4 {
			return RawEnvelopeMsg{Env: env}, nil
		}
		return dispatchExtendedSquitter(env, tsMillis, store)
	}

	// DF19: military extended squitter, application-defined ME contents
	// this decoder does not specialize (§3).
	return RawEnvelopeMsg{Env: env}, nil
}

func dispatchExtendedSquitter(env Envelope, tsMillis int64, store *aircraftStore) (Variant, error) {
	me := env.ME()
	if me == nil {
		return RawEnvelopeMsg{Env: env}, nil
	}
	tfc := me[0] >> 3

	var snap StateSnapshot
	if store != nil {
		st := store.touch(QualifiedAddress{Address: env.Address, Qualifier: env.Qualifier}, tsMillis)
		snap = StateSnapshot{
			Version:      st.version,
			NICSupplA:    st.nicSupplA,
			NICSupplC:    st.nicSupplC,
			GeoMinusBaro: st.geoMinusBaro,
		}
	}

	switch {
	case tfc == 1, tfc == 2, tfc == 3, tfc == 4:
		return NewIdentificationMsg(env)

	case tfc >= 5 && tfc <= 8:
		m, err := NewSurfacePositionMsg(env, snap)
		if err == nil && store != nil {
			applyCPRFrame(store, env, m.RawLatitude, m.RawLongitude, m.OddFlag, tsMillis)
		}
		return m, err

	case (tfc >= 9 && tfc <= 18) || (tfc >= 20 && tfc <= 22):
		m, err := NewAirbornePositionMsg(env, snap)
		if err == nil && store != nil {
			applyCPRFrame(store, env, m.RawLatitude, m.RawLongitude, m.OddFlag, tsMillis)
		}
		return m, err

	case tfc == 19:
		subtype := me[0] & 0x07
		switch subtype {
		case 1, 2:
			m, err := NewVelocityOverGroundMsg(env)
			if err == nil && store != nil {
				applyGeoMinusBaro(store, env, m.GeoMinusBaroFeet())
			}
			return m, err
		case 3, 4:
			m, err := NewAirspeedHeadingMsg(env)
			if err == nil && store != nil {
				applyGeoMinusBaro(store, env, m.GeoMinusBaroFeet())
			}
			return m, err
		default:
			return RawEnvelopeMsg{Env: env}, nil
		}

	case tfc == 28:
		subtype := me[0] & 0x07
		switch subtype {
		case 1:
			return NewEmergencyStatusMsg(env)
		case 2:
			return NewTCASResolutionAdvisoryMsg(env)
		default:
			return RawEnvelopeMsg{Env: env}, nil
		}

	case tfc == 29:
		// Only subtype 1 (Target State & Status) is specialized.
		if me[0]&0x07 != 1 {
			return RawEnvelopeMsg{Env: env}, nil
		}
		// Target State & Status is a V1/V2-only message; a V0
		// transponder with ME bit 11 set here is signalling a shape
		// this decoder must not try to interpret as TSS (§4.3).
		if snap.Version == 0 && me[1]&0x10 != 0 {
			return RawEnvelopeMsg{Env: env}, nil
		}
		return NewTargetStateStatusMsg(env)

	case tfc == 31:
		// Only subtypes 0 (airborne) and 1 (surface) are defined; any
		// other subtype falls through to the raw envelope like every
		// other unrecognized subtype in this dispatcher, rather than
		// treating an unused reserved value as a bad-format error.
		if me[0]&0x07 > 1 {
			return RawEnvelopeMsg{Env: env}, nil
		}
		v, err := NewOperationalStatusMsg(env)
		if err == nil && store != nil {
			applyOpStatus(store, env, v)
		}
		return v, err

	default:
		return RawEnvelopeMsg{Env: env}, nil
	}
}

func applyCPRFrame(store *aircraftStore, env Envelope, rawLat, rawLon uint32, odd bool, tsMillis int64) {
	store.mu.Lock()
	defer store.mu.Unlock()
	item, found := store.cache.Get(cacheKey(QualifiedAddress{Address: env.Address, Qualifier: env.Qualifier}))
	if !found {
		return
	}
	st := item.(*aircraftState)
	frame := cprFrame{rawLat: rawLat, rawLon: rawLon, tsMillis: tsMillis, valid: true}
	if odd {
		st.cpr.odd = frame
	} else {
		st.cpr.even = frame
	}
}

func applyGeoMinusBaro(store *aircraftStore, env Envelope, gmb Optional[int32]) {
	v, ok := gmb.Get()
	if !ok {
		return
	}
	store.mu.Lock()
	defer store.mu.Unlock()
	if item, found := store.cache.Get(cacheKey(QualifiedAddress{Address: env.Address, Qualifier: env.Qualifier})); found {
		item.(*aircraftState).geoMinusBaro = Some(v)
	}
}

func applyOpStatus(store *aircraftStore, env Envelope, v Variant) {
	store.mu.Lock()
	defer store.mu.Unlock()
	item, found := store.cache.Get(cacheKey(QualifiedAddress{Address: env.Address, Qualifier: env.Qualifier}))
	if !found {
		return
	}
	st := item.(*aircraftState)
	// The tracked version only ever rises; a lower version report
	// (including V0) leaves it as it is.
	switch m := v.(type) {
	case AirborneOperationalStatusMsg:
		if m.Version > st.version {
			st.version = m.Version
		}
		st.nicSupplA = m.NICSupplA
	case SurfaceOperationalStatusMsg:
		if m.Version > st.version {
			st.version = m.Version
		}
		st.nicSupplA = m.NICSupplA
		st.nicSupplC = m.NICSupplC
	}
}
