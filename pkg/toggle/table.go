package toggle

var (
	otherDeficiency = Of("Other", "Red-Green Deficiency", "Blue-Yellow Deficiency", "Acquired Deficiency")
	amslerFindings  = Of("Metamorphopsia", "Scotoma", "Distortion")
)

func display(trigger string, values Values, target string) Rule {
	return Rule{Trigger: trigger, Values: values, Target: target, Action: ActionDisplay}
}

// DefaultRules returns the rule table shared by every case variant. Variants
// only carry a subset of the referenced fields; rules whose trigger or target
// is missing are skipped when bound.
func DefaultRules() []Rule {
	return []Rule{
		// general
		display("spectaclesYes", Of("Yes"), "#currentSpectacleRx_group"),
		display("contactLensYes", Of("Yes"), "#currentContactLensRx_group"),
		display("ocularROS_notwnl", Of("Not WNL"), "#ocularROS_details"),
		display("systemicROS_notwnl", Of("Not WNL"), "#systemicROS_details"),
		display("pupils", Of("Other"), "#pupils_details"),
		display("eoms", Of("Other"), "#eoms_details"),
		display("stereopsis", Of("Present", "Absent"), "#stereopsis_details"),
		display("colorVision", otherDeficiency, "#colorVision_details"),
		display("amslerGridOD", amslerFindings, "#amslerGridOD_details"),
		display("amslerGridOS", amslerFindings, "#amslerGridOS_details"),
		display("lensOD_status", Of("other"), "#lensOD_details"),
		display("lensOS_status", Of("other"), "#lensOS_details"),
		display("gonioscopyPerformedOD_yes", Of("Yes"), "#gonioscopyOD"),
		display("gonioscopyPerformedOS_yes", Of("Yes"), "#gonioscopyOS"),
		display("opticDiscOD_status", Of("Other"), "#opticDiscOD"),
		display("opticDiscOS_status", Of("Other"), "#opticDiscOS"),
		display("maculaOD_status", Of("Other"), "#maculaOD"),
		display("maculaOS_status", Of("Other"), "#maculaOS"),
		display("peripheryOD_status", Of("Other"), "#peripheryOD"),
		display("peripheryOS_status", Of("Other"), "#peripheryOS"),
		display("peripheralLesionOD", Of("Other"), "#peripheralLesionOD_details"),
		display("peripheralLesionOS", Of("Other"), "#peripheralLesionOS_details"),

		// certificate purpose
		display("certificateType", Of("Other"), "#certificateType_other"),
		display("colorVisionCertificate", otherDeficiency, "#colorVisionCertificate_details"),

		// emergency
		display("natureOfInjuryOnset", Of("Other"), "#natureOfInjuryOnset_other"),
		display("externalExam_statusOD", Of("Other"), "#externalExamOD"),
		display("externalExam_statusOS", Of("Other"), "#externalExamOS"),
		display("pupilsEmergency", Of("Other"), "#pupilsEmergency_details"),
		display("eomsEmergency", Of("Other"), "#eomsEmergency_details"),
		display("cornealFindingOD", Of("Other"), "#cornealFindingOD_details"),
		display("cornealFindingOS", Of("Other"), "#cornealFindingOS_details"),
		display("infiltratesUlcersODYes", Of("Yes"), "#infiltratesUlcersOD_details"),
		display("infiltratesUlcersOSYes", Of("Yes"), "#infiltratesUlcersOS_details"),
		display("cornealNVODYes", Of("Yes"), "#cornealNVOD_details"),
		display("cornealNVOSYes", Of("Yes"), "#cornealNVOS_details"),
		display("referralMadeYes", Of("Yes"), "#referralDetails"),

		// follow-up
		display("pupilsFollowup", Of("Other"), "#pupilsFollowup_details"),
		display("eomsFollowup", Of("Other"), "#eomsFollowup_details"),
		display("treatmentSideEffectsYes", Of("Yes"), "#treatmentSideEffects_details"),
		display("slitLampFollowup_notwnl", Of("Not WNL"), `textarea[name="slitLampFollowup"]`),
		display("posteriorSegmentFollowup_notwnl", Of("Not WNL"), `textarea[name="posteriorSegmentFollowup"]`),

		// contact lens
		display("stainingOD_yes", Of("Yes"), "#stainingOD_details"),
		display("stainingOS_yes", Of("Yes"), "#stainingOS_details"),
		display("conjunctivalFindings", Of("Other"), "#conjunctivalFindings_details"),

		// orthoptics
		display("previousVTY_yes", Of("Yes"), "#previousVTY_details"),
		display("strabismusSurgicalHistoryYes", Of("Yes"), "#strabismusSurgicalHistory_details"),
		display("headachesYes", Of("Yes"), "#headaches_details"),
		display("amblyopiaYes", Of("Yes"), "#amblyopia_conditional_group"),
		display("strabismusYes", Of("Yes"), "#strabismus_conditional_group"),
		display("suppressionPresentYes", Of("Yes"), "#suppression"),
		display("correspondence", Of("Other"), "#correspondence_details"),
		display("vtComplianceNo", Of("No"), "#vtCompliance_reason"),

		// low vision
		display("vaChartUsed", Of("Other"), "#vaChartUsed_other"),
		display("visualFieldType", Of("Other"), "#visualFieldType_other"),
		display("contrastSensitivityChart", Of("Other"), "#contrastSensitivityChart_other"),
		display("mobilityImpairmentYes", Of("Yes"), "#mobility_details_group"),
		display("aidsDispensedYes", Of("Yes"), "#aidsDispensedList"),
		display("referralOMYes", Of("Yes"), "#referralOM_details"),
		display("referralOTYes", Of("Yes"), "#referralOT_details"),
		display("referralSSYes", Of("Yes"), "#referralSS_details"),

		// surgical co-management
		display("typeOfSurgery", Of("Other"), "#surgeryDetails"),
		display("postOpComplicationsYes", Of("Yes"), "#postOpComplicationsList"),
		display("postOpVisitType", Of("Day 1", "Week 1", "Month 1", "Month 3", "Month 6", "Annual"), "#postOpVisitDate"),

		// pediatric
		display("developmentalMilestonesStatus", Of("Delayed"), "#developmentalMilestones_details"),
		display("strabismusHistoryYes", Of("Yes"), "#strabismusHistory_details"),
		display("amblyopiaHistoryYes", Of("Yes"), "#amblyopiaHistory_details"),
		display("glassesToleranceStatus", Of("Poor", "Fair"), "#glassesTolerance_details"),
		display("amblyopiaTreatment", Of("Patching"), "#patchingHours"),
		display("strabismusManagement", Of("Surgery Referral"), "#surgeryReferralDetails"),

		// ocular surface disease
		display("lidMarginAssessment_OD", Of("Other"), "#lidMarginAssessmentOD_details"),
		display("lidMarginAssessment_OS", Of("Other"), "#lidMarginAssessmentOS_details"),
		display("inflammaDry_OD", Of("Positive", "Negative"), "#inflammaDryOD_value"),
		display("inflammaDry_OS", Of("Positive", "Negative"), "#inflammaDryOS_value"),
		display("punctalPlugsYes", Of("Yes"), "#punctalPlugsDetails"),
		display("thermalPulsationYes", Of("Yes"), "#thermalPulsationDetails"),
		display("iplTreatmentYes", Of("Yes"), "#iplTreatmentDetails"),
		display("scleralLensesConsideredYes", Of("Yes"), "#scleralLensesDetails"),
		display("cornealStainingOD_status", Of("Not WNL"), "#cornealStainingOD_details"),
		display("cornealStainingOS_status", Of("Not WNL"), "#cornealStainingOS_details"),
		display("conjunctivalStainingOD_status", Of("Not WNL"), "#conjunctivalStainingOD_details"),
		display("conjunctivalStainingOS_status", Of("Not WNL"), "#conjunctivalStainingOS_details"),

		// myopia management
		display("currentManagementMethod", Of("Atropine"), "#atropineConcentration_group"),
		display("currentManagementMethod", Of("Orthokeratology"), "#orthoKLensParameters_group"),
		display("currentManagementMethod", Of("Multifocal Soft Contact Lenses"), "#mfclLensParameters_group"),
		display("currentManagementMethod", Of("DIMS/HAL Spectacles", "Single Vision Spectacles", "Bifocal Spectacles"), "#spectacleLensType_group"),

		// neuro-optometry and vision rehabilitation
		display("typeOfInjuryCondition", Of("Other"), "#injuryDetails"),
		display("previousNeuroRehabYes", Of("Yes"), "#previousNeuroRehab_details"),
		display("visualFieldLossYes", Of("Yes"), "#visualFieldLoss_details"),
		display("oculomotorDysfunctionYes", Of("Yes"), "#oculomotorDysfunction_details"),
		display("perceptualDeficitsYes", Of("Yes"), "#perceptualDeficits_details"),
		display("balanceIssuesYes", Of("Yes"), "#balanceIssues_details"),
		display("referralOTYes", Of("Yes"), "#referralOT_details"),
		display("referralPTYes", Of("Yes"), "#referralPT_details"),
		display("referralSpeechYes", Of("Yes"), "#referralSpeech_details"),
	}
}
