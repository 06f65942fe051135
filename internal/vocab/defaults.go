package vocab

import "github.com/cortexmed/clinextract/pkg/types/clinical"

// DefaultEntries is a starter vocabulary covering the conditions, drugs,
// findings, and procedures the built-in lexicon emits.  Production
// deployments replace it with a full terminology load; it keeps the engine
// usable out of the box and anchors the mapping tests.
func DefaultEntries() []clinical.VocabularyEntry {
	return []clinical.VocabularyEntry{
		// Conditions, SNOMED first.
		{ConceptID: "84114007", ConceptName: "Heart failure", Synonyms: []string{"cardiac failure", "congestive heart failure"}, DomainID: clinical.DomainCondition, VocabularyID: clinical.VocabSNOMED},
		{ConceptID: "703272007", ConceptName: "Heart failure with reduced ejection fraction", Synonyms: []string{"systolic heart failure"}, DomainID: clinical.DomainCondition, VocabularyID: clinical.VocabSNOMED},
		{ConceptID: "446221000", ConceptName: "Heart failure with preserved ejection fraction", Synonyms: []string{"diastolic heart failure"}, DomainID: clinical.DomainCondition, VocabularyID: clinical.VocabSNOMED},
		{ConceptID: "38341003", ConceptName: "Hypertensive disorder", Synonyms: []string{"hypertension", "high blood pressure"}, DomainID: clinical.DomainCondition, VocabularyID: clinical.VocabSNOMED},
		{ConceptID: "44054006", ConceptName: "Type 2 diabetes mellitus", Synonyms: []string{"diabetes mellitus type 2", "adult onset diabetes"}, DomainID: clinical.DomainCondition, VocabularyID: clinical.VocabSNOMED},
		{ConceptID: "46635009", ConceptName: "Type 1 diabetes mellitus", Synonyms: []string{"diabetes mellitus type 1"}, DomainID: clinical.DomainCondition, VocabularyID: clinical.VocabSNOMED},
		{ConceptID: "233604007", ConceptName: "Pneumonia", DomainID: clinical.DomainCondition, VocabularyID: clinical.VocabSNOMED},
		{ConceptID: "13645005", ConceptName: "Chronic obstructive lung disease", Synonyms: []string{"chronic obstructive pulmonary disease"}, DomainID: clinical.DomainCondition, VocabularyID: clinical.VocabSNOMED},
		{ConceptID: "195967001", ConceptName: "Asthma", DomainID: clinical.DomainCondition, VocabularyID: clinical.VocabSNOMED},
		{ConceptID: "49436004", ConceptName: "Atrial fibrillation", DomainID: clinical.DomainCondition, VocabularyID: clinical.VocabSNOMED},
		{ConceptID: "53741008", ConceptName: "Coronary arteriosclerosis", Synonyms: []string{"coronary artery disease"}, DomainID: clinical.DomainCondition, VocabularyID: clinical.VocabSNOMED},
		{ConceptID: "22298006", ConceptName: "Myocardial infarction", Synonyms: []string{"heart attack"}, DomainID: clinical.DomainCondition, VocabularyID: clinical.VocabSNOMED},
		{ConceptID: "709044004", ConceptName: "Chronic kidney disease", DomainID: clinical.DomainCondition, VocabularyID: clinical.VocabSNOMED},
		{ConceptID: "14669001", ConceptName: "Acute kidney injury", Synonyms: []string{"acute renal failure"}, DomainID: clinical.DomainCondition, VocabularyID: clinical.VocabSNOMED},
		{ConceptID: "46177005", ConceptName: "End-stage renal disease", DomainID: clinical.DomainCondition, VocabularyID: clinical.VocabSNOMED},
		{ConceptID: "230690007", ConceptName: "Cerebrovascular accident", Synonyms: []string{"stroke"}, DomainID: clinical.DomainCondition, VocabularyID: clinical.VocabSNOMED},
		{ConceptID: "266257000", ConceptName: "Transient ischemic attack", DomainID: clinical.DomainCondition, VocabularyID: clinical.VocabSNOMED},
		{ConceptID: "68566005", ConceptName: "Urinary tract infectious disease", Synonyms: []string{"urinary tract infection"}, DomainID: clinical.DomainCondition, VocabularyID: clinical.VocabSNOMED},
		{ConceptID: "91302008", ConceptName: "Sepsis", DomainID: clinical.DomainCondition, VocabularyID: clinical.VocabSNOMED},
		{ConceptID: "59282003", ConceptName: "Pulmonary embolism", DomainID: clinical.DomainCondition, VocabularyID: clinical.VocabSNOMED},
		{ConceptID: "128053003", ConceptName: "Deep venous thrombosis", Synonyms: []string{"deep vein thrombosis"}, DomainID: clinical.DomainCondition, VocabularyID: clinical.VocabSNOMED},
		{ConceptID: "60046008", ConceptName: "Pleural effusion", DomainID: clinical.DomainCondition, VocabularyID: clinical.VocabSNOMED},
		{ConceptID: "235595009", ConceptName: "Gastroesophageal reflux disease", DomainID: clinical.DomainCondition, VocabularyID: clinical.VocabSNOMED},
		{ConceptID: "266569009", ConceptName: "Benign prostatic hyperplasia", DomainID: clinical.DomainCondition, VocabularyID: clinical.VocabSNOMED},
		{ConceptID: "271737000", ConceptName: "Anemia", DomainID: clinical.DomainCondition, VocabularyID: clinical.VocabSNOMED},
		{ConceptID: "55822004", ConceptName: "Hyperlipidemia", DomainID: clinical.DomainCondition, VocabularyID: clinical.VocabSNOMED},
		{ConceptID: "40930008", ConceptName: "Hypothyroidism", DomainID: clinical.DomainCondition, VocabularyID: clinical.VocabSNOMED},
		{ConceptID: "363406005", ConceptName: "Malignant neoplasm of colon", Synonyms: []string{"colon cancer"}, DomainID: clinical.DomainCondition, VocabularyID: clinical.VocabSNOMED},
		{ConceptID: "254637007", ConceptName: "Non-small cell lung cancer", Synonyms: []string{"lung cancer"}, DomainID: clinical.DomainCondition, VocabularyID: clinical.VocabSNOMED},
		{ConceptID: "128045006", ConceptName: "Cellulitis", DomainID: clinical.DomainCondition, VocabularyID: clinical.VocabSNOMED},
		{ConceptID: "90560007", ConceptName: "Gout", DomainID: clinical.DomainCondition, VocabularyID: clinical.VocabSNOMED},
		{ConceptID: "24700007", ConceptName: "Multiple sclerosis", DomainID: clinical.DomainCondition, VocabularyID: clinical.VocabSNOMED},
		{ConceptID: "79619009", ConceptName: "Mitral stenosis", DomainID: clinical.DomainCondition, VocabularyID: clinical.VocabSNOMED},
		{ConceptID: "35489007", ConceptName: "Depressive disorder", Synonyms: []string{"depression"}, DomainID: clinical.DomainCondition, VocabularyID: clinical.VocabSNOMED},

		// ICD-10-CM mirrors for the high-volume diagnoses.
		{ConceptID: "I50.9", ConceptName: "Heart failure, unspecified", DomainID: clinical.DomainCondition, VocabularyID: clinical.VocabICD10CM},
		{ConceptID: "I10", ConceptName: "Essential (primary) hypertension", Synonyms: []string{"hypertension"}, DomainID: clinical.DomainCondition, VocabularyID: clinical.VocabICD10CM},
		{ConceptID: "E11.9", ConceptName: "Type 2 diabetes mellitus without complications", DomainID: clinical.DomainCondition, VocabularyID: clinical.VocabICD10CM},
		{ConceptID: "J18.9", ConceptName: "Pneumonia, unspecified organism", Synonyms: []string{"pneumonia"}, DomainID: clinical.DomainCondition, VocabularyID: clinical.VocabICD10CM},
		{ConceptID: "J44.9", ConceptName: "Chronic obstructive pulmonary disease, unspecified", DomainID: clinical.DomainCondition, VocabularyID: clinical.VocabICD10CM},
		{ConceptID: "N18.9", ConceptName: "Chronic kidney disease, unspecified", DomainID: clinical.DomainCondition, VocabularyID: clinical.VocabICD10CM},

		// Findings.
		{ConceptID: "29857009", ConceptName: "Chest pain", DomainID: clinical.DomainFinding, VocabularyID: clinical.VocabSNOMED},
		{ConceptID: "267036007", ConceptName: "Dyspnea", Synonyms: []string{"shortness of breath"}, DomainID: clinical.DomainFinding, VocabularyID: clinical.VocabSNOMED},
		{ConceptID: "386661006", ConceptName: "Fever", DomainID: clinical.DomainFinding, VocabularyID: clinical.VocabSNOMED},
		{ConceptID: "49727002", ConceptName: "Cough", DomainID: clinical.DomainFinding, VocabularyID: clinical.VocabSNOMED},
		{ConceptID: "84229001", ConceptName: "Fatigue", DomainID: clinical.DomainFinding, VocabularyID: clinical.VocabSNOMED},
		{ConceptID: "422587007", ConceptName: "Nausea", DomainID: clinical.DomainFinding, VocabularyID: clinical.VocabSNOMED},
		{ConceptID: "422400008", ConceptName: "Vomiting", DomainID: clinical.DomainFinding, VocabularyID: clinical.VocabSNOMED},
		{ConceptID: "62315008", ConceptName: "Diarrhea", DomainID: clinical.DomainFinding, VocabularyID: clinical.VocabSNOMED},
		{ConceptID: "25064002", ConceptName: "Headache", DomainID: clinical.DomainFinding, VocabularyID: clinical.VocabSNOMED},
		{ConceptID: "404640003", ConceptName: "Dizziness", DomainID: clinical.DomainFinding, VocabularyID: clinical.VocabSNOMED},
		{ConceptID: "271594007", ConceptName: "Syncope", DomainID: clinical.DomainFinding, VocabularyID: clinical.VocabSNOMED},
		{ConceptID: "80313002", ConceptName: "Palpitations", DomainID: clinical.DomainFinding, VocabularyID: clinical.VocabSNOMED},
		{ConceptID: "267038008", ConceptName: "Edema", Synonyms: []string{"swelling"}, DomainID: clinical.DomainFinding, VocabularyID: clinical.VocabSNOMED},
		{ConceptID: "21522001", ConceptName: "Abdominal pain", DomainID: clinical.DomainFinding, VocabularyID: clinical.VocabSNOMED},
		{ConceptID: "161891005", ConceptName: "Back pain", DomainID: clinical.DomainFinding, VocabularyID: clinical.VocabSNOMED},
		{ConceptID: "271807003", ConceptName: "Rash", Synonyms: []string{"eruption of skin"}, DomainID: clinical.DomainFinding, VocabularyID: clinical.VocabSNOMED},
		{ConceptID: "56018004", ConceptName: "Wheezing", DomainID: clinical.DomainFinding, VocabularyID: clinical.VocabSNOMED},
		{ConceptID: "48409008", ConceptName: "Crackles", Synonyms: []string{"rales"}, DomainID: clinical.DomainFinding, VocabularyID: clinical.VocabSNOMED},
		{ConceptID: "419045004", ConceptName: "Altered mental status", Synonyms: []string{"change in mental status"}, DomainID: clinical.DomainFinding, VocabularyID: clinical.VocabSNOMED},

		// Laboratory observables, LOINC.
		{ConceptID: "4548-4", ConceptName: "Hemoglobin A1c", Synonyms: []string{"hba1c"}, DomainID: clinical.DomainFinding, VocabularyID: clinical.VocabLOINC},
		{ConceptID: "2160-0", ConceptName: "Creatinine", DomainID: clinical.DomainFinding, VocabularyID: clinical.VocabLOINC},
		{ConceptID: "10839-9", ConceptName: "Troponin I", Synonyms: []string{"troponin"}, DomainID: clinical.DomainFinding, VocabularyID: clinical.VocabLOINC},
		{ConceptID: "30934-4", ConceptName: "Natriuretic peptide B", Synonyms: []string{"bnp"}, DomainID: clinical.DomainFinding, VocabularyID: clinical.VocabLOINC},
		{ConceptID: "2345-7", ConceptName: "Glucose", DomainID: clinical.DomainFinding, VocabularyID: clinical.VocabLOINC},
		{ConceptID: "718-7", ConceptName: "Hemoglobin", DomainID: clinical.DomainFinding, VocabularyID: clinical.VocabLOINC},
		{ConceptID: "6690-2", ConceptName: "Leukocytes", Synonyms: []string{"white blood cell count", "wbc"}, DomainID: clinical.DomainFinding, VocabularyID: clinical.VocabLOINC},
		{ConceptID: "777-3", ConceptName: "Platelets", Synonyms: []string{"platelet count"}, DomainID: clinical.DomainFinding, VocabularyID: clinical.VocabLOINC},
		{ConceptID: "6301-6", ConceptName: "INR", Synonyms: []string{"international normalized ratio"}, DomainID: clinical.DomainFinding, VocabularyID: clinical.VocabLOINC},
		{ConceptID: "8480-6", ConceptName: "Systolic blood pressure", Synonyms: []string{"blood pressure"}, DomainID: clinical.DomainFinding, VocabularyID: clinical.VocabLOINC},
		{ConceptID: "8867-4", ConceptName: "Heart rate", Synonyms: []string{"pulse rate"}, DomainID: clinical.DomainFinding, VocabularyID: clinical.VocabLOINC},
		{ConceptID: "8310-5", ConceptName: "Body temperature", Synonyms: []string{"temperature"}, DomainID: clinical.DomainFinding, VocabularyID: clinical.VocabLOINC},
		{ConceptID: "2708-6", ConceptName: "Oxygen saturation", Synonyms: []string{"spo2"}, DomainID: clinical.DomainFinding, VocabularyID: clinical.VocabLOINC},
		{ConceptID: "9279-1", ConceptName: "Respiratory rate", DomainID: clinical.DomainFinding, VocabularyID: clinical.VocabLOINC},
		{ConceptID: "10230-1", ConceptName: "Left ventricular ejection fraction", Synonyms: []string{"ejection fraction"}, DomainID: clinical.DomainFinding, VocabularyID: clinical.VocabLOINC},
		{ConceptID: "2951-2", ConceptName: "Sodium", DomainID: clinical.DomainFinding, VocabularyID: clinical.VocabLOINC},
		{ConceptID: "2823-3", ConceptName: "Potassium", DomainID: clinical.DomainFinding, VocabularyID: clinical.VocabLOINC},

		// Drugs, RxNorm ingredient level.
		{ConceptID: "4603", ConceptName: "Furosemide", Synonyms: []string{"lasix"}, DomainID: clinical.DomainDrug, VocabularyID: clinical.VocabRxNorm},
		{ConceptID: "6809", ConceptName: "Metformin", DomainID: clinical.DomainDrug, VocabularyID: clinical.VocabRxNorm},
		{ConceptID: "29046", ConceptName: "Lisinopril", DomainID: clinical.DomainDrug, VocabularyID: clinical.VocabRxNorm},
		{ConceptID: "6918", ConceptName: "Metoprolol", DomainID: clinical.DomainDrug, VocabularyID: clinical.VocabRxNorm},
		{ConceptID: "20352", ConceptName: "Carvedilol", DomainID: clinical.DomainDrug, VocabularyID: clinical.VocabRxNorm},
		{ConceptID: "17767", ConceptName: "Amlodipine", DomainID: clinical.DomainDrug, VocabularyID: clinical.VocabRxNorm},
		{ConceptID: "11289", ConceptName: "Warfarin", Synonyms: []string{"coumadin"}, DomainID: clinical.DomainDrug, VocabularyID: clinical.VocabRxNorm},
		{ConceptID: "1364430", ConceptName: "Apixaban", Synonyms: []string{"eliquis"}, DomainID: clinical.DomainDrug, VocabularyID: clinical.VocabRxNorm},
		{ConceptID: "1114195", ConceptName: "Rivaroxaban", Synonyms: []string{"xarelto"}, DomainID: clinical.DomainDrug, VocabularyID: clinical.VocabRxNorm},
		{ConceptID: "32968", ConceptName: "Clopidogrel", Synonyms: []string{"plavix"}, DomainID: clinical.DomainDrug, VocabularyID: clinical.VocabRxNorm},
		{ConceptID: "1191", ConceptName: "Aspirin", DomainID: clinical.DomainDrug, VocabularyID: clinical.VocabRxNorm},
		{ConceptID: "5224", ConceptName: "Heparin", DomainID: clinical.DomainDrug, VocabularyID: clinical.VocabRxNorm},
		{ConceptID: "83367", ConceptName: "Atorvastatin", Synonyms: []string{"lipitor"}, DomainID: clinical.DomainDrug, VocabularyID: clinical.VocabRxNorm},
		{ConceptID: "301542", ConceptName: "Rosuvastatin", Synonyms: []string{"crestor"}, DomainID: clinical.DomainDrug, VocabularyID: clinical.VocabRxNorm},
		{ConceptID: "7646", ConceptName: "Omeprazole", Synonyms: []string{"prilosec"}, DomainID: clinical.DomainDrug, VocabularyID: clinical.VocabRxNorm},
		{ConceptID: "40790", ConceptName: "Pantoprazole", Synonyms: []string{"protonix"}, DomainID: clinical.DomainDrug, VocabularyID: clinical.VocabRxNorm},
		{ConceptID: "26225", ConceptName: "Ondansetron", Synonyms: []string{"zofran"}, DomainID: clinical.DomainDrug, VocabularyID: clinical.VocabRxNorm},
		{ConceptID: "161", ConceptName: "Acetaminophen", Synonyms: []string{"tylenol"}, DomainID: clinical.DomainDrug, VocabularyID: clinical.VocabRxNorm},
		{ConceptID: "5640", ConceptName: "Ibuprofen", Synonyms: []string{"advil", "motrin"}, DomainID: clinical.DomainDrug, VocabularyID: clinical.VocabRxNorm},
		{ConceptID: "435", ConceptName: "Albuterol", DomainID: clinical.DomainDrug, VocabularyID: clinical.VocabRxNorm},
		{ConceptID: "8640", ConceptName: "Prednisone", DomainID: clinical.DomainDrug, VocabularyID: clinical.VocabRxNorm},
		{ConceptID: "18631", ConceptName: "Azithromycin", DomainID: clinical.DomainDrug, VocabularyID: clinical.VocabRxNorm},
		{ConceptID: "2193", ConceptName: "Ceftriaxone", DomainID: clinical.DomainDrug, VocabularyID: clinical.VocabRxNorm},
		{ConceptID: "11124", ConceptName: "Vancomycin", DomainID: clinical.DomainDrug, VocabularyID: clinical.VocabRxNorm},
		{ConceptID: "10582", ConceptName: "Levothyroxine", Synonyms: []string{"synthroid"}, DomainID: clinical.DomainDrug, VocabularyID: clinical.VocabRxNorm},
		{ConceptID: "25789", ConceptName: "Gabapentin", DomainID: clinical.DomainDrug, VocabularyID: clinical.VocabRxNorm},
		{ConceptID: "5487", ConceptName: "Hydrochlorothiazide", DomainID: clinical.DomainDrug, VocabularyID: clinical.VocabRxNorm},
		{ConceptID: "9997", ConceptName: "Spironolactone", Synonyms: []string{"aldactone"}, DomainID: clinical.DomainDrug, VocabularyID: clinical.VocabRxNorm},
		{ConceptID: "36567", ConceptName: "Sertraline", Synonyms: []string{"zoloft"}, DomainID: clinical.DomainDrug, VocabularyID: clinical.VocabRxNorm},
		{ConceptID: "69749", ConceptName: "Insulin glargine", Synonyms: []string{"lantus"}, DomainID: clinical.DomainDrug, VocabularyID: clinical.VocabRxNorm},

		// Procedures.
		{ConceptID: "232717009", ConceptName: "Coronary artery bypass grafting", Synonyms: []string{"coronary artery bypass graft"}, DomainID: clinical.DomainProcedure, VocabularyID: clinical.VocabSNOMED},
		{ConceptID: "415070008", ConceptName: "Percutaneous coronary intervention", DomainID: clinical.DomainProcedure, VocabularyID: clinical.VocabSNOMED},
		{ConceptID: "40701008", ConceptName: "Echocardiography", Synonyms: []string{"echocardiogram"}, DomainID: clinical.DomainProcedure, VocabularyID: clinical.VocabSNOMED},
		{ConceptID: "399208008", ConceptName: "Plain chest X-ray", Synonyms: []string{"chest x-ray", "chest radiograph"}, DomainID: clinical.DomainProcedure, VocabularyID: clinical.VocabSNOMED},
		{ConceptID: "77477000", ConceptName: "Computed tomography", Synonyms: []string{"ct scan"}, DomainID: clinical.DomainProcedure, VocabularyID: clinical.VocabSNOMED},
		{ConceptID: "113091000", ConceptName: "Magnetic resonance imaging", Synonyms: []string{"mri"}, DomainID: clinical.DomainProcedure, VocabularyID: clinical.VocabSNOMED},
		{ConceptID: "73761001", ConceptName: "Colonoscopy", DomainID: clinical.DomainProcedure, VocabularyID: clinical.VocabSNOMED},
		{ConceptID: "302497006", ConceptName: "Hemodialysis", DomainID: clinical.DomainProcedure, VocabularyID: clinical.VocabSNOMED},
		{ConceptID: "112798008", ConceptName: "Insertion of endotracheal tube", Synonyms: []string{"intubation"}, DomainID: clinical.DomainProcedure, VocabularyID: clinical.VocabSNOMED},
		{ConceptID: "40617009", ConceptName: "Artificial ventilation", Synonyms: []string{"mechanical ventilation"}, DomainID: clinical.DomainProcedure, VocabularyID: clinical.VocabSNOMED},
		{ConceptID: "91602002", ConceptName: "Thoracentesis", DomainID: clinical.DomainProcedure, VocabularyID: clinical.VocabSNOMED},
		{ConceptID: "45211000", ConceptName: "Paracentesis", DomainID: clinical.DomainProcedure, VocabularyID: clinical.VocabSNOMED},
		{ConceptID: "277762005", ConceptName: "Lumbar puncture", DomainID: clinical.DomainProcedure, VocabularyID: clinical.VocabSNOMED},
		{ConceptID: "80146002", ConceptName: "Appendectomy", DomainID: clinical.DomainProcedure, VocabularyID: clinical.VocabSNOMED},
		{ConceptID: "38102005", ConceptName: "Cholecystectomy", DomainID: clinical.DomainProcedure, VocabularyID: clinical.VocabSNOMED},
		{ConceptID: "179344006", ConceptName: "Total knee replacement", DomainID: clinical.DomainProcedure, VocabularyID: clinical.VocabSNOMED},
		{ConceptID: "52734007", ConceptName: "Total hip replacement", DomainID: clinical.DomainProcedure, VocabularyID: clinical.VocabSNOMED},
		{ConceptID: "18286008", ConceptName: "Cardiac catheterization", DomainID: clinical.DomainProcedure, VocabularyID: clinical.VocabSNOMED},
	}
}

// DefaultIndex builds the starter index.  It never fails; a failure here is
// a programming error in the default entries.
func DefaultIndex() *Index {
	ix, err := NewIndex(DefaultEntries())
	if err != nil {
		panic(err)
	}
	return ix
}
