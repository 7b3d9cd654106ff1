package main

import (
	"encoding/json"
	"inspecteur/config"
	"inspecteur/database"
	"inspecteur/models"
	courseModels "inspecteur/models/course"
	"log"

	"golang.org/x/crypto/bcrypt"
)

type seedQuestion struct {
	Text         string
	Options      []string
	CorrectIndex int
}

type seedModule struct {
	Title        string
	Description  string
	Content      string
	OrderIndex   int
	IsFree       bool
	QuizTitle    string
	PassingScore int
	Questions    []seedQuestion
}

func main() {
	// Load config and connect to database
	config.LoadConfig()
	database.ConnectDb()

	db := database.Database.Db

	// Admin account
	var admin models.User
	if err := db.Where("email = ?", "admin@inspecteur-auto.fr").First(&admin).Error; err != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte("ChangeMe!2026"), config.AppConfig.SaltRound)
		if err != nil {
			log.Fatalf("Failed to hash admin password: %v", err)
		}
		admin = models.User{
			Name:     "Administrateur",
			Email:    "admin@inspecteur-auto.fr",
			Password: string(hashed),
			Role:     "ADMIN",
		}
		if err := db.Create(&admin).Error; err != nil {
			log.Fatalf("Failed to create admin user: %v", err)
		}
		log.Println("Admin account created. Change the default password immediately.")
	}

	modules := []seedModule{
		{
			Title:       "Introduction à l'inspection automobile",
			Description: "Le métier d'inspecteur, le déroulé d'une inspection et les outils indispensables.",
			Content:     "<h2>Bienvenue</h2><p>Ce module gratuit présente le métier d'inspecteur automobile.</p>",
			OrderIndex:  1,
			IsFree:      true,
			QuizTitle:   "Quiz - Introduction",
			PassingScore: 80,
			Questions: []seedQuestion{
				{
					Text:         "Quel document doit être vérifié en premier lors d'une inspection ?",
					Options:      []string{"La carte grise", "Le carnet d'entretien", "La facture d'achat", "L'attestation d'assurance"},
					CorrectIndex: 0,
				},
				{
					Text:         "Combien de points de contrôle comporte une inspection complète ?",
					Options:      []string{"50", "100", "Plus de 200", "25"},
					CorrectIndex: 2,
				},
			},
		},
		{
			Title:       "Carrosserie et châssis",
			Description: "Détecter les traces d'accident, la corrosion et les réparations masquées.",
			Content:     "<h2>Carrosserie</h2><p>Apprenez à repérer mastic, différences de teinte et jeux d'ajustement.</p>",
			OrderIndex:  2,
			QuizTitle:   "Quiz - Carrosserie",
			PassingScore: 80,
			Questions: []seedQuestion{
				{
					Text:         "Quel outil permet de mesurer l'épaisseur de peinture ?",
					Options:      []string{"Un micromètre", "Un testeur d'épaisseur", "Un pied à coulisse", "Une jauge de profondeur"},
					CorrectIndex: 1,
				},
				{
					Text:         "Une différence de teinte entre deux éléments indique le plus souvent :",
					Options:      []string{"Un défaut d'usine", "Une repeinte", "Une usure normale", "Un nettoyage récent"},
					CorrectIndex: 1,
				},
			},
		},
		{
			Title:       "Moteur et mécanique",
			Description: "Contrôles moteur à froid et à chaud, fuites, bruits anormaux.",
			Content:     "<h2>Moteur</h2><p>Les vérifications mécaniques indispensables avant tout achat.</p>",
			OrderIndex:  3,
			QuizTitle:   "Quiz - Moteur",
			PassingScore: 80,
			Questions: []seedQuestion{
				{
					Text:         "Une fumée bleue à l'échappement indique :",
					Options:      []string{"Une consommation d'huile", "Un excès de carburant", "De la condensation", "Un filtre à air encrassé"},
					CorrectIndex: 0,
				},
				{
					Text:         "Le contrôle du moteur doit commencer :",
					Options:      []string{"Moteur chaud", "Moteur froid", "Après l'essai routier", "Peu importe"},
					CorrectIndex: 1,
				},
			},
		},
	}

	for _, m := range modules {
		var existing courseModels.Module
		if err := db.Where("order_index = ? AND is_deleted = ?", m.OrderIndex, false).First(&existing).Error; err == nil {
			log.Printf("Module %d already exists, skipping", m.OrderIndex)
			continue
		}

		module := courseModels.Module{
			Title:       m.Title,
			Description: m.Description,
			Content:     m.Content,
			OrderIndex:  m.OrderIndex,
			IsFree:      m.IsFree,
			IsPublished: true,
		}
		if err := db.Create(&module).Error; err != nil {
			log.Fatalf("Failed to create module %q: %v", m.Title, err)
		}

		quiz := courseModels.Quiz{
			ModuleID:     module.ID,
			Title:        m.QuizTitle,
			PassingScore: m.PassingScore,
		}
		if err := db.Create(&quiz).Error; err != nil {
			log.Fatalf("Failed to create quiz for module %q: %v", m.Title, err)
		}

		for i, q := range m.Questions {
			optionsJSON, _ := json.Marshal(q.Options)
			question := courseModels.Question{
				QuizID:       quiz.ID,
				Text:         q.Text,
				Options:      optionsJSON,
				CorrectIndex: q.CorrectIndex,
				OrderIndex:   i,
			}
			if err := db.Create(&question).Error; err != nil {
				log.Fatalf("Failed to create question for quiz %q: %v", m.QuizTitle, err)
			}
		}

		log.Printf("Seeded module %d: %s", m.OrderIndex, m.Title)
	}

	log.Println("Seeding completed.")
}
