package storage

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/ArthurDelaporte/ShowcaseMedia-Back/internal/logs"
)

var s3Client *s3.Client
var s3Bucket string
var s3Region string

func InitS3() error {
	s3Bucket = os.Getenv("AWS_BUCKET_NAME")
	s3Region = os.Getenv("AWS_REGION")

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(s3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			os.Getenv("AWS_ACCESS_KEY_ID"),
			os.Getenv("AWS_SECRET_ACCESS_KEY"),
			"",
		)),
	)
	if err != nil {
		return fmt.Errorf("chargement config AWS: %w", err)
	}

	s3Client = s3.NewFromConfig(cfg)
	return nil
}

// DeleteResult résume une suppression par lot.
type DeleteResult struct {
	Deleted []string `json:"deleted"`
	Failed  []string `json:"failed"`
}

// DeleteImages supprime une liste d'URLs S3. Les échecs sont journalisés
// et comptés mais ne bloquent jamais l'appelant : la suppression des
// enregistrements ne dépend pas du stockage média.
func DeleteImages(urls []string) DeleteResult {
	var result DeleteResult
	for _, url := range urls {
		key, ok := keyFromURL(url)
		if !ok {
			// URL externe (crédit tiers) : rien à supprimer chez nous
			continue
		}
		if err := deleteObject(key); err != nil {
			logs.LogJSON("ERROR", "S3 image deletion failed", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
			result.Failed = append(result.Failed, url)
			continue
		}
		result.Deleted = append(result.Deleted, url)
	}
	return result
}

func deleteObject(key string) error {
	if s3Client == nil {
		return fmt.Errorf("client S3 non initialisé")
	}
	_, err := s3Client.DeleteObject(context.TODO(), &s3.DeleteObjectInput{
		Bucket: aws.String(s3Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("erreur suppression S3 : %w", err)
	}
	return nil
}

// keyFromURL extrait la clé objet d'une URL publique de notre bucket.
func keyFromURL(url string) (string, bool) {
	parts := strings.Split(url, ".amazonaws.com/")
	if len(parts) != 2 || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
